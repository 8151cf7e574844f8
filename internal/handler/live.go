/*
Package handler provides the HTTP handlers and routing setup for the Thinkle web client.

This file defines liveConn, the WebSocket connection of an open game page. It pushes
the rendered board after every change of the tab state and keeps the connection alive
with pings; messages sent by the browser are read and discarded.
*/
package handler

import (
	"bytes"
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"thinkle/internal/pkg/logx"
	"thinkle/internal/web"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 512
)

// liveConn represents the WebSocket connection of one game page.
type liveConn struct {
	conn *websocket.Conn
	tab  *Tab
	deps *AppDeps

	// updates is signalled by the controller after each state change.
	updates <-chan struct{}

	// structured logger with tab context.
	logger zerolog.Logger
}

func newLiveConn(conn *websocket.Conn, tab *Tab, deps *AppDeps, updates <-chan struct{}) *liveConn {
	return &liveConn{
		conn:    conn,
		tab:     tab,
		deps:    deps,
		updates: updates,
		logger:  logx.Component("LiveBoard").With().Str("tab_id", tab.ID).Logger(),
	}
}

// ReadPump reads from the connection until it fails or is closed, handling heartbeats.
func (c *liveConn) ReadPump() {
	defer func() {
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Live connection close error")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Live connection closed unexpectedly")
			}
			return
		}
	}
}

// WritePump pushes the board on every update until ctx is done or a write fails.
func (c *liveConn) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Live connection close error in WritePump")
		}
	}()

	if !c.writeBoard() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			c.writeClose()
			return

		case <-c.updates:
			if !c.writeBoard() {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
			c.deps.Manager.Touch(c.tab.ID)
		}
	}
}

// renderBoard renders the board fragment of the current tab state.
func (c *liveConn) renderBoard() ([]byte, error) {
	page := web.NewGamePage(c.tab.Ctrl.Snapshot(), c.tab.User(), c.deps.Config.TotalLives)

	var buf bytes.Buffer
	if err := c.deps.Views.Fragment(&buf, web.FragmentBoard, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBoard returns false if the WritePump loop should terminate.
func (c *liveConn) writeBoard() bool {
	board, err := c.renderBoard()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to render board")
		return false
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, board); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing board")
		return false
	}

	return true
}

// writePingMessage returns false if the WritePump loop should terminate due to write failure.
func (c *liveConn) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

func (c *liveConn) writeClose() {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing close message")
	}
}
