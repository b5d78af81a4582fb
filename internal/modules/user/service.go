package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// GetUserByID returns (nil, nil) when no user has the given id.
	GetUserByID(ctx context.Context, id int64) (*User, error)
	// ValidateCredentials reports whether the proof matches the stored
	// credential. A nonexistent username yields (false, nil).
	ValidateCredentials(ctx context.Context, username, password string) (bool, error)
	CreateUser(ctx context.Context, username, email, password string) (*User, error)
}
