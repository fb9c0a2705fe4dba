// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	authUseCase "github.com/allisson/cardvault/internal/auth/usecase"
	cardHTTP "github.com/allisson/cardvault/internal/card/http"
	"github.com/allisson/cardvault/internal/config"
	"github.com/allisson/cardvault/internal/metrics"
	userHTTP "github.com/allisson/cardvault/internal/user/http"
)

// readinessTimeout bounds the database ping done by /ready.
const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a Server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers every route. ctx bounds the lifetime of the rate
// limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authUseCase authUseCase.AuthUseCase,
	authHandler *authHTTP.AuthHandler,
	cardHandler *cardHTTP.CardHandler,
	userHandler *userHTTP.UserHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	login := []gin.HandlerFunc{}
	if cfg.RateLimitLoginEnabled {
		login = append(login, authHTTP.LoginRateLimitMiddleware(
			ctx, cfg.RateLimitLoginRequestsPerSec, cfg.RateLimitLoginBurst, s.logger,
		))
	}
	login = append(login, authHandler.LoginHandler)
	v1.POST("/auth/login", login...)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(authUseCase, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(
			ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger,
		))
	}

	user := authHTTP.RequireRole(authDomain.RoleUser, s.logger)
	admin := authHTTP.RequireRole(authDomain.RoleAdmin, s.logger)

	cards := authenticated.Group("/cards")
	{
		cards.GET("", user, cardHandler.ListOwnHandler)
		cards.GET("/all", admin, cardHandler.ListAllHandler)
		cards.POST("", admin, cardHandler.CreateHandler)
		cards.POST("/transfer", user, cardHandler.TransferHandler)
		cards.PATCH("/:id/block", admin, cardHandler.BlockHandler)
		cards.PATCH("/:id/block-request", user, cardHandler.RequestBlockHandler)
		cards.PATCH("/:id/activate", admin, cardHandler.ActivateHandler)
		cards.DELETE("/:id", admin, cardHandler.DeleteHandler)
	}

	users := authenticated.Group("/users", admin)
	{
		users.POST("", userHandler.CreateHandler)
		users.GET("", userHandler.ListHandler)
		users.GET("/:id", userHandler.GetHandler)
	}

	s.router = router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
