package user

import "context"

// Repository defines the interface for user data storage. Lookups
// return (nil, nil) when no row matches; absence is a normal outcome,
// not an error.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Create inserts u and fills in the store-assigned ID and
	// CreatedDate from the same round-trip.
	Create(ctx context.Context, u *User) error
}
