package domain

import "time"

// Identity is the resolved user a use case operates on. It is passed
// explicitly to every operation; nothing reads a process-wide current user.
type Identity struct {
	Username string
}

// User is a registered account in the credential store.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity returns the session context for u.
func (u *User) Identity() Identity {
	return Identity{Username: u.Username}
}
