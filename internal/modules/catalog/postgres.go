package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tmbale/storefront-backend/internal/platform/database"
)

type postgresRepo struct {
	db          database.DB
	maxPageSize int
}

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db database.DB) Repository {
	return &postgresRepo{db: db, maxPageSize: DefaultMaxPageSize}
}

// scanProduct decodes one row in column order. Description is nullable;
// NULL maps to the empty string.
func scanProduct(scan func(...any) error) (*Product, error) {
	p := &Product{}
	var description sql.NullString
	err := scan(&p.ID, &p.Name, &description, &p.Price, &p.Category, &p.InStock, &p.CreatedDate)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = description.String
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	query, args, err := database.Bind(
		`SELECT `+productColumns+` FROM products WHERE id = :id`,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("catalog: get by id", err)
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]*Product, int, error) {
	compiled, err := compileFilter(f, r.maxPageSize)
	if err != nil {
		return nil, 0, err
	}

	var total int
	row := r.db.QueryRowContext(ctx, compiled.countSQL, compiled.countArgs...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, database.Classify("catalog: count", err)
	}

	rows, err := r.db.QueryContext(ctx, compiled.pageQuery, compiled.pageArgs...)
	if err != nil {
		return nil, 0, database.Classify("catalog: list", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, 0, database.Classify("catalog: list", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.Classify("catalog: list", err)
	}
	return products, total, nil
}

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	var description any
	if p.Description != "" {
		description = p.Description
	}

	// Single round-trip: RETURNING hands back the store-assigned id and
	// created_date, avoiding a re-query race.
	query, args, err := database.Bind(
		`INSERT INTO products (name, description, price, category, in_stock)
		 VALUES (:name, :description, :price, :category, :in_stock)
		 RETURNING id, created_date`,
		map[string]any{
			"name":        p.Name,
			"description": description,
			"price":       p.Price,
			"category":    p.Category,
			"in_stock":    p.InStock,
		},
	)
	if err != nil {
		return err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&p.ID, &p.CreatedDate); err != nil {
		return database.Classify("catalog: create", err)
	}
	return nil
}
