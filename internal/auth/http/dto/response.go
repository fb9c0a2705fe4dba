package dto

import (
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
}

// MapLoginOutputToResponse converts a login result into its response body.
func MapLoginOutputToResponse(output *authUseCase.LoginOutput) LoginResponse {
	return LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		Username:    output.Identity.Username,
		Roles:       output.Identity.Roles,
	}
}
