package httputil_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardvault/internal/errors"
	"github.com/allisson/cardvault/internal/httputil"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{
			name:            "not found",
			err:             apperrors.Wrap(apperrors.ErrNotFound, "card not found"),
			expectedStatus:  http.StatusNotFound,
			expectedCode:    "not_found",
			expectedMessage: "card not found",
		},
		{
			name:            "conflict",
			err:             apperrors.Wrap(apperrors.ErrConflict, "insufficient funds"),
			expectedStatus:  http.StatusConflict,
			expectedCode:    "conflict",
			expectedMessage: "insufficient funds",
		},
		{
			name:            "invalid input",
			err:             apperrors.Wrap(apperrors.ErrInvalidInput, "transfer amount must be positive"),
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedCode:    "invalid_input",
			expectedMessage: "transfer amount must be positive",
		},
		{
			name:            "forbidden",
			err:             apperrors.Wrap(apperrors.ErrForbidden, "transfer only between own cards"),
			expectedStatus:  http.StatusForbidden,
			expectedCode:    "forbidden",
			expectedMessage: "transfer only between own cards",
		},
		{
			name:            "unauthorized",
			err:             apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"),
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    "unauthorized",
			expectedMessage: "invalid credentials",
		},
		{
			name:            "token error",
			err:             apperrors.Join(apperrors.Wrap(apperrors.ErrToken, "malformed token"), errors.New("sig")),
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    "invalid_token",
			expectedMessage: "The access token is malformed or expired",
		},
		{
			name: "cipher error hides cause",
			err: apperrors.Join(
				apperrors.Wrap(apperrors.ErrCipher, "card number cipher failure"),
				errors.New("cipher: message authentication failed"),
			),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    "internal_error",
			expectedMessage: "An internal error occurred",
		},
		{
			name:            "unknown error",
			err:             fmt.Errorf("dial tcp: connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    "internal_error",
			expectedMessage: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			httputil.HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var response httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedCode, response.Error)
			assert.Equal(t, tt.expectedMessage, response.Message)
			assert.NotContains(t, w.Body.String(), "authentication failed")
		})
	}
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httputil.HandleBadRequestGin(c, errors.New("invalid JSON"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid JSON"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := apperrors.Wrap(apperrors.ErrInvalidInput, "amount: cannot be blank.")
	httputil.HandleValidationErrorGin(c, err, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"amount: cannot be blank."}`, w.Body.String())
}
