// Package dto provides data transfer objects for the user HTTP layer.
package dto

import "github.com/allisson/cardvault/internal/user/usecase"

// CreateUserRequest contains the parameters for creating a user.
// Field rules are enforced by the user use case.
type CreateUserRequest struct {
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// ToCreateUserInput converts the request into use case input.
func (r *CreateUserRequest) ToCreateUserInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username: r.Username,
		FullName: r.FullName,
		Email:    r.Email,
		Password: r.Password,
		Roles:    r.Roles,
	}
}
