package domain

import "time"

// User is a player account identified by a unique username.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}
