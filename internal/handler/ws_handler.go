/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains HandleWebSocket, which upgrades the connection of an open game page,
starts polling the session while it is in progress and pushes the board on each change.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
	"thinkle/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := GetTab(r)
		if !tab.Auth().Authenticated() {
			logx.Info("WebSocket connection rejected: not signed in.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		updates, unsubscribe := tab.Ctrl.Subscribe()
		defer unsubscribe()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		deps.Manager.Watch(ctx, tab.Ctrl, deps.Config.PollInterval)

		live := newLiveConn(conn, tab, deps, updates)
		go live.WritePump(ctx)

		logx.Info("Live board connected", "tab_id", tab.ID)

		live.ReadPump()

		logx.Info("Live board disconnected", "tab_id", tab.ID)
	}
}
