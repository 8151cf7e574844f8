/*
Package handler provides HTTP handler functions for the home and game pages.

Page and form handlers drive the tab controller and answer with a redirect to the page
showing the result; the JSON handlers expose the same operations to scripted clients.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"thinkle/internal/app/game"
	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
	"thinkle/internal/pkg/req"
	"thinkle/internal/pkg/resp"
	"thinkle/internal/web"
)

// GuessInput is the body of the JSON guess endpoint.
type GuessInput struct {
	Guess string `json:"guess"`
}

// HintInput is the body of the JSON hint endpoint.
type HintInput struct {
	HintType string `json:"hintType"`
}

// StateResponse is the tab state returned by the JSON game endpoints.
type StateResponse struct {
	View           game.View         `json:"view"`
	Session        *game.GameSession `json:"gameSession"`
	RemainingLives *int              `json:"remainingLives"`
	Board          []game.BoardGuess `json:"boardState"`
	Pending        bool              `json:"pending"`
	Error          string            `json:"error,omitempty"`
}

func newStateResponse(st game.State) StateResponse {
	board := st.Board
	if board == nil {
		board = []game.BoardGuess{}
	}
	return StateResponse{
		View:           st.View,
		Session:        st.Session,
		RemainingLives: st.Lives,
		Board:          board,
		Pending:        st.Pending(),
		Error:          st.Error,
	}
}

// HandleHome renders the home page. A game stored for the tab is restored so it can
// be continued; the error of a failed start is shown once.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)

		if !tab.Ctrl.Snapshot().Checked && !tab.Ctrl.Restore(r.Context()) {
			tab.Ctrl.MarkChecked()
		}

		st := tab.Ctrl.Snapshot()
		deps.Views.Page(w, http.StatusOK, web.PageHome, web.HomePage{
			User:    tab.User(),
			HasGame: st.Session != nil,
			Error:   st.Error,
		})
		if st.Error != "" {
			tab.Ctrl.DismissError()
		}
	}
}

// HandleGame renders the game page, restoring or fetching the session on first visit.
// Tabs without a session are sent to the home page.
func HandleGame(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)

		if !tab.Ctrl.Mount(r.Context()) {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}

		page := web.NewGamePage(tab.Ctrl.Snapshot(), tab.User(), deps.Config.TotalLives)
		deps.Views.Page(w, http.StatusOK, web.PageGame, page)
	}
}

// HandleStartGame creates a new game session and opens the game page.
func HandleStartGame(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := GetTab(r).Ctrl.CreateSession(r.Context()); err != nil {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/game", http.StatusSeeOther)
	}
}

// HandleGuessForm submits the guess typed on the game page.
func HandleGuessForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)

		if customErr := req.ParseForm(w, r); customErr != nil {
			renderNotice(w, r, deps, http.StatusBadRequest, customErr.Message)
			return
		}

		word := strings.ToUpper(req.FormValue(r, "guess"))
		if verr := game.ValidateGuess(word); verr != nil {
			renderNotice(w, r, deps, http.StatusUnprocessableEntity, verr.Fields["guess"])
			return
		}
		if err := tab.Ctrl.SubmitGuess(r.Context(), word); err != nil {
			if errors.Is(err, errs.ErrGuessInFlight) {
				renderNotice(w, r, deps, http.StatusConflict, err.Error())
				return
			}
			logx.Debug("Guess not accepted", "error", err.Error())
		}
		http.Redirect(w, r, "/game", http.StatusSeeOther)
	}
}

// HandleHintForm requests the hint picked on the game page.
func HandleHintForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.ParseForm(w, r); customErr != nil {
			renderNotice(w, r, deps, http.StatusBadRequest, customErr.Message)
			return
		}

		hintType := req.FormValue(r, "hintType")
		if hintType == "" {
			renderNotice(w, r, deps, http.StatusUnprocessableEntity, errs.NewError(errs.ErrInvalidParams).Message)
			return
		}

		if err := GetTab(r).Ctrl.GetHint(r.Context(), hintType); err != nil {
			logx.Debug("Hint not revealed", "hint_type", hintType, "error", err.Error())
		}
		http.Redirect(w, r, "/game", http.StatusSeeOther)
	}
}

// HandleRefreshForm reloads the session from the backend.
func HandleRefreshForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		GetTab(r).Ctrl.FetchSession(r.Context())
		http.Redirect(w, r, "/game", http.StatusSeeOther)
	}
}

// HandleBackHome drops the game state of the tab and opens the home page.
func HandleBackHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		GetTab(r).Ctrl.ResetToHome(r.Context())
		http.Redirect(w, r, "/home", http.StatusSeeOther)
	}
}

// HandleDismissError clears the error banner.
func HandleDismissError(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		GetTab(r).Ctrl.DismissError()
		http.Redirect(w, r, "/game", http.StatusSeeOther)
	}
}

// HandleAPIState returns the tab state, restoring or fetching the session on first use.
func HandleAPIState(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		tab.Ctrl.Mount(r.Context())
		resp.RespondSuccess(w, r, newStateResponse(tab.Ctrl.Snapshot()))
	}
}

// HandleAPICreateSession starts a new game.
func HandleAPICreateSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		if err := tab.Ctrl.CreateSession(r.Context()); err != nil {
			respondFailure(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, newStateResponse(tab.Ctrl.Snapshot()))
	}
}

// HandleAPIGuess submits a guess.
func HandleAPIGuess(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)

		var input GuessInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		word := strings.ToUpper(strings.TrimSpace(input.Guess))
		if verr := game.ValidateGuess(word); verr != nil {
			resp.RespondValidation(w, r, verr)
			return
		}
		if err := tab.Ctrl.SubmitGuess(r.Context(), word); err != nil {
			respondFailure(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, newStateResponse(tab.Ctrl.Snapshot()))
	}
}

// HandleAPIHint requests a hint.
func HandleAPIHint(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)

		var input HintInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if strings.TrimSpace(input.HintType) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := tab.Ctrl.GetHint(r.Context(), input.HintType); err != nil {
			respondFailure(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, newStateResponse(tab.Ctrl.Snapshot()))
	}
}

// HandleAPIRefresh reloads the session from the backend.
func HandleAPIRefresh(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		if tab.Ctrl.FetchSession(r.Context()) == nil {
			message := tab.Ctrl.Error()
			if message == "" {
				message = errs.FallbackMessage
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrGameRequestFailed, message))
			return
		}
		resp.RespondSuccess(w, r, newStateResponse(tab.Ctrl.Snapshot()))
	}
}

// HandleAPIReset drops the game state of the tab.
func HandleAPIReset(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		tab.Ctrl.ResetToHome(r.Context())
		resp.RespondSuccess(w, r, newStateResponse(tab.Ctrl.Snapshot()))
	}
}
