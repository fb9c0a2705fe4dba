package dto

import (
	"time"

	"github.com/allisson/cardvault/internal/user/domain"
)

// UserResponse is the public form of a user. The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse is returned by GET /v1/users.
type UserListResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUserToResponse converts a domain user into a response.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
}

// MapUsersToResponse converts a slice of users, preserving order.
func MapUsersToResponse(users []*domain.User) UserListResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}
	return UserListResponse{Data: data}
}
