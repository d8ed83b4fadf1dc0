package ports

import (
	"context"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RegisterInput carries the fields accepted by the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService defines identity use cases. Registration never issues a token;
// the caller must log in separately.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
