package catalog

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	// GetByID returns (nil, nil) when no product has the given id.
	GetByID(ctx context.Context, id int64) (*Product, error)
	// List returns one page of matching products plus the total number
	// of matches, both computed by the store.
	List(ctx context.Context, f Filter) ([]*Product, int, error)
	// Create inserts p and fills in the store-assigned ID and
	// CreatedDate from the same round-trip.
	Create(ctx context.Context, p *Product) error
}
