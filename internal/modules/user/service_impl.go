package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/tmbale/storefront-backend/internal/platform/database"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, database.New(database.KindInvalidRequest, "user: id must be positive")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
}

func (s *service) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	switch {
	case username == "":
		return nil, database.New(database.KindInvalidRequest, "user: username is required")
	case email == "":
		return nil, database.New(database.KindInvalidRequest, "user: email is required")
	case password == "":
		return nil, database.New(database.KindInvalidRequest, "user: password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
