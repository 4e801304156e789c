package utils

import "time"

// SessionData is the middleware-facing view of a session row: who the caller
// is, what role they carry, and when the session stops being valid.
type SessionData struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}
