// Package dto provides data transfer objects for the login endpoint.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardvault/internal/validation"
)

// LoginRequest contains the credentials for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}
