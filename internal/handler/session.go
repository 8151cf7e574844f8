/*
Package handler provides the HTTP handlers and routing setup for the Thinkle web client.

This file holds the tab middleware. Every request is bound to a tab cookie, which lives
for the browser session, and a device cookie, which outlives it. The tab id selects the
game controller; the device id selects the stored login.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/resp"
)

const (
	TabCookie    = "thinkle_tab"
	DeviceCookie = "thinkle_device"
)

type contextKey string

// ContextTabKey is the key used to store the *Tab of a request in its Context.
const ContextTabKey contextKey = "tab"

// Tab is the client state a request acts on.
type Tab struct {
	ID       string
	DeviceID string
	Ctrl     *game.Controller
}

// Auth returns the login of the tab, or nil.
func (t *Tab) Auth() *user.Session { return t.Ctrl.Auth() }

// User returns the signed-in user, or the zero User.
func (t *Tab) User() user.User {
	if auth := t.Auth(); auth != nil {
		return auth.User
	}
	return user.User{}
}

// TabSession resolves the tab and device cookies, issuing new ones when missing, and
// refreshes the login of the tab controller from the device storage.
func TabSession(deps *AppDeps) func(next http.Handler) http.Handler {
	secure := !deps.Config.IsDevelopment()
	deviceMaxAge := int(deps.Config.CookieMaxAge.Seconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tabID := cookieID(r, TabCookie)
			if tabID == "" {
				tabID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     TabCookie,
					Value:    tabID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			deviceID := cookieID(r, DeviceCookie)
			if deviceID == "" {
				deviceID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     DeviceCookie,
					Value:    deviceID,
					Path:     "/",
					MaxAge:   deviceMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctrl := deps.Manager.Controller(tabID)
			if auth, ok := deps.Vault.Load(r.Context(), deviceID); ok {
				ctrl.SetAuth(auth)
			} else {
				ctrl.SetAuth(nil)
			}

			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("tab_id", tabID)
			})

			tab := &Tab{ID: tabID, DeviceID: deviceID, Ctrl: ctrl}
			ctx := context.WithValue(r.Context(), ContextTabKey, tab)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTab extracts the *Tab stored by TabSession. It returns nil outside of it.
func GetTab(r *http.Request) *Tab {
	tab, ok := r.Context().Value(ContextTabKey).(*Tab)
	if !ok {
		return nil
	}
	return tab
}

// RequireLogin redirects page requests of signed-out tabs to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tab := GetTab(r); tab == nil || !tab.Auth().Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLoginAPI rejects JSON requests of signed-out tabs with ErrUnauthorized.
func RequireLoginAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tab := GetTab(r); tab == nil || !tab.Auth().Authenticated() {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cookieID returns the value of cookie name when it holds a UUID.
func cookieID(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}
