// Package session keeps a client-side access token fresh. A manager holds
// the current token, refreshes it shortly before expiry, and coalesces
// concurrent refresh attempts into a single exchange.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/campuscliq/campuscliq-server/internal/logger"
)

// State is the refresh lifecycle state of a session.
type State string

const (
	// StateIdle means the manager is waiting for the next refresh cycle.
	StateIdle State = "idle"
	// StateRefreshing means an exchange is in flight.
	StateRefreshing State = "refreshing"
	// StateRefreshed means an exchange just succeeded; the manager settles
	// back to idle once the new token is installed.
	StateRefreshed State = "refreshed"
	// StateFailed means the last exchange failed. The state is terminal:
	// further refresh attempts are rejected without an exchange until
	// SetToken installs a fresh login.
	StateFailed State = "failed"
)

// ErrSessionDead is returned by Refresh after a failed exchange. The caller
// has to log in again; retrying the exchange would only replay the failure.
var ErrSessionDead = errors.New("session is dead, log in again")

// TokenSource performs the actual token exchange against the server.
type TokenSource interface {
	ExchangeToken(ctx context.Context) (accessToken string, ttl time.Duration, err error)
}

// Manager holds an access token and keeps it fresh. All methods are safe
// for concurrent use.
type Manager struct {
	source TokenSource
	margin time.Duration
	logger *logger.Logger

	group singleflight.Group

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	state     State
	timer     *time.Timer
}

// NewManager creates a Manager that refreshes through source, starting
// each refresh margin before the token expires.
func NewManager(source TokenSource, margin time.Duration, logger *logger.Logger) *Manager {
	return &Manager{
		source: source,
		margin: margin,
		logger: logger,
		state:  StateIdle,
	}
}

// SetToken installs a token obtained out of band (login or registration)
// and arms the refresh timer.
func (m *Manager) SetToken(token string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.expiresAt = time.Now().Add(ttl)
	m.state = StateIdle
	m.armTimerLocked(ttl)
}

// Token returns the current access token. ok is false when no valid token
// is held.
func (m *Manager) Token() (token string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" || time.Now().After(m.expiresAt) {
		return "", false
	}
	return m.token, true
}

// State returns the current refresh state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Refresh exchanges the session for a fresh access token. Concurrent calls
// coalesce into one exchange; every caller observes the same result.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	token, err, _ := m.group.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.state == StateFailed {
		m.mu.Unlock()
		return "", ErrSessionDead
	}
	m.state = StateRefreshing
	m.mu.Unlock()

	token, ttl, err := m.source.ExchangeToken(ctx)
	if err != nil {
		m.mu.Lock()
		m.state = StateFailed
		m.token = ""
		m.stopTimerLocked()
		m.mu.Unlock()

		m.logger.Error("Session manager: token exchange failed",
			"error", err.Error())
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.expiresAt = time.Now().Add(ttl)
	m.state = StateRefreshed
	m.armTimerLocked(ttl)
	m.mu.Unlock()

	m.logger.Debug("Session manager: token refreshed",
		"expires_in", ttl.String())

	m.setState(StateIdle)
	return token, nil
}

// Stop disarms the refresh timer. The held token stays usable until expiry.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// armTimerLocked schedules a background refresh margin before expiry.
// Callers must hold m.mu.
func (m *Manager) armTimerLocked(ttl time.Duration) {
	m.stopTimerLocked()

	delay := ttl - m.margin
	if delay < 0 {
		delay = 0
	}

	m.timer = time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := m.Refresh(ctx); err != nil {
			m.logger.Info("Session manager: scheduled refresh failed",
				"error", err.Error())
		}
	})
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
