package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tmbale/storefront-backend/internal/platform/database"
)

type postgresRepository struct {
	db database.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db database.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, username, email, password, created_date, is_active, role`

// scanUser decodes one row in column order. Role is nullable; NULL maps
// to the empty string. Any other decode failure surfaces as a mapping
// error through database.Classify at the call site.
func scanUser(scan func(...any) error) (*User, error) {
	u := &User{}
	var role sql.NullString
	err := scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedDate, &u.IsActive, &role)
	if err != nil {
		return nil, err
	}
	if role.Valid {
		u.Role = role.String
	}
	return u, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query, args, err := database.Bind(
		`SELECT `+userColumns+` FROM users WHERE id = :id`,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("user: get by id", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query, args, err := database.Bind(
		`SELECT `+userColumns+` FROM users WHERE username = :username`,
		map[string]any{"username": username},
	)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("user: get by username", err)
	}
	return u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *User) error {
	var role any
	if u.Role != "" {
		role = u.Role
	}

	// Single round-trip: the store assigns id and created_date and the
	// RETURNING clause hands them back, so there is no re-query race
	// against concurrent inserts.
	query, args, err := database.Bind(
		`INSERT INTO users (username, email, password, is_active, role)
		 VALUES (:username, :email, :password, :is_active, :role)
		 RETURNING id, created_date`,
		map[string]any{
			"username":  u.Username,
			"email":     u.Email,
			"password":  u.PasswordHash,
			"is_active": u.IsActive,
			"role":      role,
		},
	)
	if err != nil {
		return err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&u.ID, &u.CreatedDate); err != nil {
		return database.Classify("user: create", err)
	}
	return nil
}
