package catalog

import (
	"context"
	"strings"

	"github.com/tmbale/storefront-backend/internal/platform/database"
)

// Service defines catalog business logic.
type Service interface {
	// ListProducts returns one page of matching products and the total
	// match count, both computed by the store.
	ListProducts(ctx context.Context, f Filter) ([]*Product, int, error)
	// SearchProducts lists products whose name or description contains
	// term, case-insensitively.
	SearchProducts(ctx context.Context, term string) ([]*Product, error)
	CreateProduct(ctx context.Context, d Draft) (*Product, error)
	// GetProductByID returns (nil, nil) when no product has the given id.
	GetProductByID(ctx context.Context, id int64) (*Product, error)
}

const minNameLength = 3

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, f Filter) ([]*Product, int, error) {
	return s.repo.List(ctx, f)
}

func (s *service) SearchProducts(ctx context.Context, term string) ([]*Product, error) {
	products, _, err := s.repo.List(ctx, Filter{
		Search:   term,
		Page:     1,
		PageSize: DefaultMaxPageSize,
	})
	return products, err
}

func (s *service) CreateProduct(ctx context.Context, d Draft) (*Product, error) {
	// Draft invariants are checked before any store interaction.
	switch {
	case len(strings.TrimSpace(d.Name)) < minNameLength:
		return nil, database.New(database.KindInvalidRequest, "catalog: product name must be at least 3 characters")
	case d.Price <= 0:
		return nil, database.New(database.KindInvalidRequest, "catalog: price must be positive")
	case d.Category == "":
		return nil, database.New(database.KindInvalidRequest, "catalog: category is required")
	}

	p := &Product{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		InStock:     d.InStock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, database.New(database.KindInvalidRequest, "catalog: id must be positive")
	}
	return s.repo.GetByID(ctx, id)
}
