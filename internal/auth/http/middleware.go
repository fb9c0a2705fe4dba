package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	"github.com/allisson/cardvault/internal/httputil"
)

// AuthenticationMiddleware authenticates the Bearer token in the Authorization
// header and stores the resulting identity in the request context.
//
// The "Bearer" scheme is matched case-insensitively. Missing, malformed,
// expired or badly signed tokens are rejected with 401 before any handler runs.
//
// Usage:
//
//	cards := router.Group("/v1/cards", AuthenticationMiddleware(authUseCase, logger))
//	cards.GET("", func(c *gin.Context) {
//	    identity, _ := GetIdentity(c.Request.Context())
//	    ...
//	})
func AuthenticationMiddleware(useCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		identity, err := useCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))

		logger.Debug("authentication successful",
			slog.String("user_id", identity.UserID.String()),
			slog.String("username", identity.Username))

		c.Next()
	}
}

// RequireRole rejects identities that do not carry role with 403.
// Must run after AuthenticationMiddleware.
func RequireRole(role string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no identity in context")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		if !identity.HasRole(role) {
			logger.Debug("authorization failed: missing role",
				slog.String("user_id", identity.UserID.String()),
				slog.String("role", role))
			httputil.HandleErrorGin(c, authDomain.ErrInsufficientRole, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
