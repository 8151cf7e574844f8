/*
Package game holds the client-side state of a Thinkle game.

This file defines the Manager, which creates, tracks, retrieves and cleans up the
Controller of every open browser tab.
*/
package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"thinkle/internal/pkg/logx"
)

// PersisterFactory returns the storage bridge of a tab.
type PersisterFactory func(tabID string) Persister

// Manager is responsible for coordinating and managing the controllers of all tabs.
type Manager struct {
	// controllers stores every Controller, keyed by tab id.
	controllers map[string]*managedController

	backend    Backend
	persisters PersisterFactory

	// idleTimeout is the inactivity after which a controller is dropped.
	idleTimeout time.Duration

	// mu protects concurrent access to the controllers map.
	mu sync.RWMutex

	// stop ends the cleanup loop.
	stop chan struct{}

	// pollCtx is cancelled on shutdown to end every poller started by Watch.
	pollCtx    context.Context
	cancelPoll context.CancelFunc

	// wg is used to wait for the cleanup goroutine and the pollers to finish during shutdown.
	wg sync.WaitGroup

	// structured logger with Manager context.
	logger zerolog.Logger
}

type managedController struct {
	ctrl     *Controller
	lastSeen time.Time
}

// NewManager constructs a Manager and starts its cleanup loop.
func NewManager(backend Backend, persisters PersisterFactory, idleTimeout time.Duration) *Manager {
	m := &Manager{
		controllers: make(map[string]*managedController),
		backend:     backend,
		persisters:  persisters,
		idleTimeout: idleTimeout,
		stop:        make(chan struct{}),
		logger:      logx.Component("Manager"),
	}
	m.pollCtx, m.cancelPoll = context.WithCancel(context.Background())

	m.wg.Add(1)

	go m.runCleanupLoop()

	return m
}

// runCleanupLoop periodically removes controllers idle longer than idleTimeout.
func (m *Manager) runCleanupLoop() {
	defer m.wg.Done()

	interval := m.idleTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info().Dur("idle_timeout", m.idleTimeout).Msg("Cleanup loop started.")

	for {
		select {
		case now := <-ticker.C:
			m.removeIdle(now)
		case <-m.stop:
			m.logger.Info().Msg("Cleanup loop stopped.")
			return
		}
	}
}

// removeIdle drops controllers not used since now minus idleTimeout and returns how
// many were removed.
func (m *Manager) removeIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for tabID, mc := range m.controllers {
		if now.Sub(mc.lastSeen) > m.idleTimeout {
			delete(m.controllers, tabID)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info().Int("removed", removed).Int("active", len(m.controllers)).Msg("Idle controllers removed.")
	}
	return removed
}

// Controller returns the controller of tabID, creating it on first use.
func (m *Manager) Controller(tabID string) *Controller {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if mc, ok := m.controllers[tabID]; ok {
		mc.lastSeen = now
		return mc.ctrl
	}

	ctrl := NewController(tabID, m.backend, m.persisters(tabID))
	m.controllers[tabID] = &managedController{ctrl: ctrl, lastSeen: now}

	m.logger.Debug().Str("tab_id", tabID).Msg("New controller created.")
	return ctrl
}

// Lookup returns the controller of tabID without creating one.
func (m *Manager) Lookup(tabID string) *Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mc, ok := m.controllers[tabID]
	if !ok {
		return nil
	}
	return mc.ctrl
}

// Touch marks the controller of tabID as used now.
func (m *Manager) Touch(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mc, ok := m.controllers[tabID]; ok {
		mc.lastSeen = time.Now()
	}
}

// Len returns the number of tracked controllers.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.controllers)
}

// Watch polls ctrl every interval in the background until ctx is done, the session
// leaves IN_PROGRESS or the Manager shuts down.
func (m *Manager) Watch(ctx context.Context, ctrl *Controller, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.pollCtx, cancel)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer stop()
		defer cancel()
		Poll(ctx, ctrl, interval)
	}()
}

// Shutdown stops the cleanup loop and the pollers, then forgets every controller.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down Manager cleanup loop...")

	m.cancelPoll()
	close(m.stop)
	m.wg.Wait()

	m.mu.Lock()
	m.controllers = make(map[string]*managedController)
	m.mu.Unlock()

	m.logger.Info().Msg("Manager shutdown complete.")
}
