/*
Package handler provides HTTP handler functions for signing players in and out.

The forms of the login page and the JSON endpoints share the same flow: validate the
form, authenticate against the backend, then store the login in the device scope.
*/
package handler

import (
	"context"
	"net/http"

	"thinkle/internal/app/api"
	"thinkle/internal/app/auth"
	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
	"thinkle/internal/pkg/req"
	"thinkle/internal/pkg/resp"
	"thinkle/internal/web"
)

// AuthResult is the data of a successful JSON login or registration.
type AuthResult struct {
	User user.User `json:"user"`
}

// signIn sends form to the backend and stores the resulting login for the tab's device.
func signIn(ctx context.Context, deps *AppDeps, tab *Tab, form auth.Form) (*user.Session, error) {
	var (
		session *user.Session
		err     error
	)
	if form.SignUp {
		session, err = deps.API.Register(ctx, api.RegisterRequest{
			Username: form.Username,
			Email:    form.Email,
			Password: form.Password,
		})
	} else {
		session, err = deps.API.Login(ctx, api.LoginRequest{
			Email:    form.Email,
			Password: form.Password,
		})
	}
	if err != nil {
		return nil, err
	}

	if err := deps.Vault.Save(ctx, tab.DeviceID, session); err != nil {
		logx.Error(err, "Failed to store login", "user_id", session.User.ID)
		return nil, err
	}
	tab.Ctrl.SetAuth(session)

	logx.Info("Player signed in", "user_id", session.User.ID, "sign_up", form.SignUp)
	return session, nil
}

// HandleLoginPage renders the login page, or redirects signed-in tabs to the home page.
func HandleLoginPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if GetTab(r).Auth().Authenticated() {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
		signUp := r.URL.Query().Get("mode") == "signup"
		deps.Views.Page(w, http.StatusOK, web.PageLogin, web.LoginPage{SignUp: signUp})
	}
}

// HandleLoginForm processes the login (signUp false) or registration (signUp true) form.
func HandleLoginForm(deps *AppDeps, signUp bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		if tab.Auth().Authenticated() {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Views.Page(w, http.StatusBadRequest, web.PageLogin, web.LoginPage{SignUp: signUp, Message: customErr.Message})
			return
		}

		form := auth.Form{
			Email:           req.FormValue(r, "email"),
			Password:        r.PostFormValue("password"),
			Username:        req.FormValue(r, "username"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
			SignUp:          signUp,
		}
		page := web.LoginPage{SignUp: signUp, Email: form.Email, Username: form.Username}

		if verr := form.Validate(); verr != nil {
			page.Errors = verr.Fields
			deps.Views.Page(w, http.StatusUnprocessableEntity, web.PageLogin, page)
			return
		}

		if _, err := signIn(r.Context(), deps, tab, form); err != nil {
			logx.Warn("Sign in rejected", "sign_up", signUp, "error", err.Error())
			page.Message = errs.UserMessage(err)
			deps.Views.Page(w, http.StatusOK, web.PageLogin, page)
			return
		}

		http.Redirect(w, r, "/home", http.StatusSeeOther)
	}
}

// HandleLogout signs the device out and drops the game state of the tab.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signOut(r.Context(), deps, GetTab(r))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func signOut(ctx context.Context, deps *AppDeps, tab *Tab) {
	deps.Vault.Clear(ctx, tab.DeviceID)
	tab.Ctrl.ResetToHome(ctx)
	tab.Ctrl.SetAuth(nil)
}

// HandleAPILogin creates an HTTP HandlerFunc for JSON login (signUp false) or registration (signUp true).
func HandleAPILogin(deps *AppDeps, signUp bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		if tab.Auth().Authenticated() {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var form auth.Form
		if customErr := req.BindJSON(w, r, &form); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		form.SignUp = signUp
		form.Normalize()

		if verr := form.Validate(); verr != nil {
			resp.RespondValidation(w, r, verr)
			return
		}

		session, err := signIn(r.Context(), deps, tab, form)
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, AuthResult{User: session.User})
	}
}

// HandleAPILogout creates an HTTP HandlerFunc for JSON sign out.
func HandleAPILogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signOut(r.Context(), deps, GetTab(r))
		resp.RespondSuccess(w, r, nil)
	}
}
