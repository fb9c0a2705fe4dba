package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	"github.com/allisson/cardvault/internal/auth/http/dto"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	authMocks "github.com/allisson/cardvault/internal/auth/usecase/mocks"
)

func setupAuthHandler() (*AuthHandler, *authMocks.MockAuthUseCase) {
	useCase := &authMocks.MockAuthUseCase{}
	return NewAuthHandler(useCase, discardLogger()), useCase
}

func TestAuthHandler_LoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupAuthHandler()
		output := &authUseCase.LoginOutput{
			AccessToken: "signed.jwt.token",
			Identity: authDomain.Identity{
				UserID:   uuid.Must(uuid.NewV7()),
				Username: "alice",
				Roles:    []string{"USER"},
			},
		}
		useCase.On("Login", mock.Anything, "alice", "Str0ng!Pass").Return(output, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/auth/login",
			dto.LoginRequest{Username: "alice", Password: "Str0ng!Pass"})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "signed.jwt.token", response.AccessToken)
		assert.Equal(t, "Bearer", response.TokenType)
		assert.Equal(t, []string{"USER"}, response.Roles)
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		handler, useCase := setupAuthHandler()
		useCase.On("Login", mock.Anything, "alice", "wrong").Return(nil, authDomain.ErrInvalidCredentials).Once()

		c, w := createTestContext(http.MethodPost, "/v1/auth/login",
			dto.LoginRequest{Username: "alice", Password: "wrong"})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "unauthorized", response.Error)
		assert.Equal(t, "invalid credentials", response.Message)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, useCase := setupAuthHandler()

		c, w := createTestContext(http.MethodPost, "/v1/auth/login", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("{not json")))
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
		useCase.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		handler, useCase := setupAuthHandler()

		c, w := createTestContext(http.MethodPost, "/v1/auth/login", dto.LoginRequest{Username: "alice"})
		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_error", decodeError(t, w).Error)
		useCase.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}
