package app

import (
	"encoding/base64"
	"fmt"

	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authService "github.com/allisson/cardvault/internal/auth/service"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
)

// PasswordService returns the Argon2id password hasher.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	return c.passwordService.get(func() (authService.PasswordService, error) {
		return authService.NewPasswordService()
	})
}

// TokenService returns the JWT service keyed by AUTH_TOKEN_SIGNING_KEY.
func (c *Container) TokenService() (authService.TokenService, error) {
	return c.tokenService.get(func() (authService.TokenService, error) {
		key, err := base64.StdEncoding.DecodeString(c.config.AuthTokenSigningKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode token signing key: %w", err)
		}
		return authService.NewTokenService(key, c.config.AuthTokenExpiration)
	})
}

// AuthUseCase returns the login and token authentication use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	return c.authUseCase.get(func() (authUseCase.AuthUseCase, error) {
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
		}
		passwordService, err := c.PasswordService()
		if err != nil {
			return nil, fmt.Errorf("failed to get password service for auth use case: %w", err)
		}
		tokenService, err := c.TokenService()
		if err != nil {
			return nil, fmt.Errorf("failed to get token service for auth use case: %w", err)
		}

		useCase := authUseCase.NewAuthUseCase(userRepo, passwordService, tokenService)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// AuthHandler returns the login handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	return c.authHandler.get(func() (*authHTTP.AuthHandler, error) {
		useCase, err := c.AuthUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
		}
		return authHTTP.NewAuthHandler(useCase, c.Logger()), nil
	})
}
