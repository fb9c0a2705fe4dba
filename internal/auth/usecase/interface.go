// Package usecase implements user login and bearer token authentication.
package usecase

import (
	"context"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	userDomain "github.com/allisson/cardvault/internal/user/domain"
)

// UserRepository resolves users by username.
type UserRepository interface {
	// GetByUsername returns ErrUserNotFound when no user has the username.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	AccessToken string
	Identity    authDomain.Identity
}

// AuthUseCase defines login and token authentication.
type AuthUseCase interface {
	// Login checks the credentials and issues a token carrying the user's roles.
	// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginOutput, error)

	// Authenticate verifies the bearer token and resolves the caller identity.
	// Any verification failure returns ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*authDomain.Identity, error)
}
