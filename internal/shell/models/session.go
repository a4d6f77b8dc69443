package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the live authenticated context of one shell run. The identity
// may be replaced by a user switch; History outlives such switches.
type Session struct {
	ID        string
	Identity  Identity
	History   []string
	StartedAt time.Time
}

// NewSession starts a session for identity with an empty history.
func NewSession(identity Identity) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		StartedAt: time.Now(),
	}
}

// Record appends a raw input line to the history.
func (s *Session) Record(line string) {
	s.History = append(s.History, line)
}

// SwitchTo replaces the identity and keeps ID and history.
func (s *Session) SwitchTo(identity Identity) {
	s.Identity = identity
}

// Uptime reports how long the session has been running.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.StartedAt)
}
