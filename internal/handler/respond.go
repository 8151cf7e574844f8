package handler

import (
	"errors"
	"net/http"
	"strings"

	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/resp"
	"thinkle/internal/web"
)

// respondFailure writes err as a JSON envelope. Validation errors carry their fields,
// backend and state errors carry the message shown to the player.
func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *errs.ValidationError
	var customErr *errs.CustomError
	var apiErr *errs.APIError

	switch {
	case errors.As(err, &verr):
		resp.RespondValidation(w, r, verr)
	case errors.Is(err, errs.ErrGuessInFlight):
		resp.RespondError(w, r, errs.NewError(errs.ErrGuessPending))
	case errors.Is(err, errs.ErrNotAuthenticated):
		resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
	case errors.As(err, &customErr):
		resp.RespondError(w, r, customErr)
	default:
		failure := errs.NewError(errs.ErrGameRequestFailed, errs.UserMessage(err))
		if errors.As(err, &apiErr) && apiErr.IsNetwork() {
			failure.Status = http.StatusBadGateway
		}
		resp.RespondError(w, r, failure)
	}
}

// renderNotice shows message on the game page when the tab has a session, otherwise
// on the home page. The controller state is left untouched.
func renderNotice(w http.ResponseWriter, r *http.Request, deps *AppDeps, status int, message string) {
	tab := GetTab(r)
	st := tab.Ctrl.Snapshot()

	if st.Session == nil {
		deps.Views.Page(w, status, web.PageHome, web.HomePage{User: tab.User(), Error: message})
		return
	}

	page := web.NewGamePage(st, tab.User(), deps.Config.TotalLives)
	page.Error = message
	deps.Views.Page(w, status, web.PageGame, page)
}

// onLimited answers requests refused by the rate limiter: JSON for the API, a page
// notice for form posts.
func onLimited(deps *AppDeps) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		limited := errs.NewError(errs.ErrRateLimitExceeded)
		if isAPI(r) || GetTab(r) == nil {
			resp.RespondError(w, r, limited)
			return
		}
		if !GetTab(r).Auth().Authenticated() {
			deps.Views.Page(w, limited.Status, web.PageLogin, web.LoginPage{Message: limited.Message})
			return
		}
		renderNotice(w, r, deps, limited.Status, limited.Message)
	}
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
