package domain

import "time"

// SessionStatus tracks the lifecycle of a cooking session. Transitions
// are monotonic toward Completed or Aborted; there is no way back out of
// a terminal state.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	// SessionPaused is reserved. No command currently transitions into
	// it; it exists so a future mid-session suspension doesn't need a
	// schema change.
	SessionPaused
	SessionCompleted
	SessionAborted
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionPaused:
		return "paused"
	case SessionCompleted:
		return "completed"
	case SessionAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is Completed or Aborted.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionAborted
}

// SessionState is the mutable part of a cooking session: where we are in
// the recipe and whether the session is still live. The recipe reference
// is non-owning and never mutated through it.
type SessionState struct {
	ID        string
	Recipe    *Recipe
	Step      int // 0-based, always within [0, len(Recipe.Steps))
	Status    SessionStatus
	StartedAt time.Time
}
