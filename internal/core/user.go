package core

import "time"

// User is an account record. The PIN is never stored; only a salted
// hash survives registration.
type User struct {
	ID        int64
	Username  string
	PINHash   []byte
	Salt      []byte
	CreatedAt time.Time
}
