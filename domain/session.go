package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a time-limited authorization artifact. Once issued its
// expiry never moves; validity is purely a function of the clock.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Fresh reports whether the credential is still usable for an operation
// expected to outlive a brief network round trip.
func (c Credential) Fresh(now time.Time, margin time.Duration) bool {
	return c.Token != "" && c.ExpiresAt.Sub(now) > margin
}

// Session is the identity of one logged-in user. It is created at login and
// lives for the whole app run. The mutable per-session state (viewed
// language, cached credential, open subscription) is owned by the components
// that mutate it: the coordinator, the credential broker and the channel
// manager. Nothing session-scoped lives in package-level state.
type Session struct {
	UserID   uuid.UUID
	UserName string
}

func NewSession(userName string) Session {
	return Session{UserID: uuid.New(), UserName: userName}
}

// User returns the author identity used on outgoing envelopes.
func (s Session) User() ChatUser {
	return ChatUser{Name: s.UserName, ID: s.UserID.String()}
}
