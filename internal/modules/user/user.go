package user

import "time"

// User is an identity record. ID and CreatedDate are assigned by the
// store at insert time and immutable afterward. PasswordHash never
// crosses the authentication boundary: it is excluded from JSON and
// must not be logged.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedDate  time.Time `json:"created_date"`
	IsActive     bool      `json:"is_active"`
	Role         string    `json:"role,omitempty"`
}
