/*
Package handler provides the HTTP handlers and routing setup for the Thinkle web client.

This file defines the main Router, applying middleware like request ids, logging, panic
recovery, CORS on the JSON API and IP-based rate limiting before delegating requests to
the page, form, JSON and WebSocket handlers.
*/
package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"thinkle/internal/pkg/logx"
	"thinkle/internal/pkg/resp"
	"thinkle/internal/web"
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}
			if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	if deps.Limiter != nil {
		deps.Limiter.OnLimited = onLimited(deps)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		if deps.Limiter == nil {
			return h
		}
		return deps.Limiter.Middleware(h)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		logx.Debug("Health check endpoint hit")

		data := map[string]string{
			"status":  "ok",
			"service": "Thinkle Web Client",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	r.Group(func(pages chi.Router) {
		pages.Use(TabSession(deps))

		pages.Get("/", HandleLoginPage(deps))
		pages.Method(http.MethodPost, "/auth/login", limited(HandleLoginForm(deps, false)))
		pages.Method(http.MethodPost, "/auth/register", limited(HandleLoginForm(deps, true)))
		pages.Post("/auth/logout", HandleLogout(deps))

		pages.Group(func(game chi.Router) {
			game.Use(RequireLogin)

			game.Get("/home", HandleHome(deps))
			game.Get("/game", HandleGame(deps))
			game.Method(http.MethodPost, "/game/start", limited(HandleStartGame(deps)))
			game.Method(http.MethodPost, "/game/guess", limited(HandleGuessForm(deps)))
			game.Method(http.MethodPost, "/game/hint", limited(HandleHintForm(deps)))
			game.Post("/game/refresh", HandleRefreshForm(deps))
			game.Post("/game/home", HandleBackHome(deps))
			game.Post("/game/dismiss-error", HandleDismissError(deps))
		})

		pages.Get("/ws/game", HandleWebSocket(deps, wsUpgrader))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(c.Handler)
		api.Use(TabSession(deps))

		api.Route("/auth", func(auth chi.Router) {
			auth.Method(http.MethodPost, "/login", limited(HandleAPILogin(deps, false)))
			auth.Method(http.MethodPost, "/register", limited(HandleAPILogin(deps, true)))
			auth.Post("/logout", HandleAPILogout(deps))
		})

		api.Group(func(authed chi.Router) {
			authed.Use(RequireLoginAPI)

			authed.Route("/game", func(game chi.Router) {
				game.Get("/state", HandleAPIState(deps))
				game.Method(http.MethodPost, "/session", limited(HandleAPICreateSession(deps)))
				game.Method(http.MethodPost, "/guess", limited(HandleAPIGuess(deps)))
				game.Method(http.MethodPost, "/hint", limited(HandleAPIHint(deps)))
				game.Post("/refresh", HandleAPIRefresh(deps))
				game.Post("/reset", HandleAPIReset(deps))
			})

			authed.Route("/hint-types", func(ht chi.Router) {
				ht.Post("/create", HandleCreateHintType(deps))
				ht.Post("/update", HandleUpdateHintType(deps))
				ht.Delete("/delete", HandleDeleteHintType(deps))
				ht.Post("/re-activate", HandleReactivateHintType(deps))
			})
		})
	})

	return r
}
