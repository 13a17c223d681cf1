package usecase

import (
	"context"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput defines the data required to register a new customer.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the generated access token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// UserUsecase defines the interface for user-related business operations.
type UserUsecase interface {
	// Register creates a new customer account.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Profile returns the account of the authenticated user.
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
