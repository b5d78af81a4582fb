package catalog

import "time"

// Product is a catalog record. ID and CreatedDate are assigned by the
// store; entities returned by this module are immutable snapshots.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	CreatedDate time.Time `json:"created_date"`
}

// Draft holds the caller-supplied fields for creating a product.
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"in_stock"`
}

// Filter is the query shape for listing products. Zero-valued fields
// contribute no predicate; Search matches name or description
// case-insensitively as a substring.
type Filter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Page     int
	PageSize int
}
