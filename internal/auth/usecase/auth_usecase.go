package usecase

import (
	"context"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authService "github.com/allisson/cardvault/internal/auth/service"
	apperrors "github.com/allisson/cardvault/internal/errors"
	userDomain "github.com/allisson/cardvault/internal/user/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

func (a *authUseCase) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	if username == "" || password == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	token, err := a.tokenService.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		Identity: authDomain.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Roles:    user.Roles,
		},
	}, nil
}

// Authenticate trusts the roles carried by the token; the user row is only
// read to resolve the user id and to reject tokens of deleted users.
func (a *authUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Identity, error) {
	if token == "" || !a.tokenService.Verify(token) {
		return nil, authDomain.ErrInvalidToken
	}

	username, err := a.tokenService.Subject(token)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}
	roles, err := a.tokenService.Roles(token)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	return &authDomain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    roles,
	}, nil
}
