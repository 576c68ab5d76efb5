// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/whistlebase/whistlebase/internal/auth/http"
	authUseCase "github.com/whistlebase/whistlebase/internal/auth/usecase"
	casesHTTP "github.com/whistlebase/whistlebase/internal/cases/http"
	channelsHTTP "github.com/whistlebase/whistlebase/internal/channels/http"
	"github.com/whistlebase/whistlebase/internal/config"
	"github.com/whistlebase/whistlebase/internal/metrics"
	orgHTTP "github.com/whistlebase/whistlebase/internal/organization/http"
)

// ReadinessChecker reports whether a dependency is able to serve requests.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	checks map[string]ReadinessChecker
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		checks: make(map[string]ReadinessChecker),
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RegisterReadinessCheck adds a named component to the /ready report.
func (s *Server) RegisterReadinessCheck(name string, check ReadinessChecker) {
	s.checks[name] = check
}

// SetupRouter builds the gin engine with middleware and every API route.
//
// Anonymous entry points (signup, case submission, login and reporter access to cases)
// share one per-IP rate limiter when it is enabled. Requests carrying a valid member
// session bypass the limiter.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	organizationHandler *orgHTTP.OrganizationHandler,
	loginHandler *authHTTP.LoginHandler,
	channelHandler *channelsHTTP.ChannelHandler,
	caseHandler *casesHTTP.CaseHandler,
	loginUseCase authUseCase.LoginUseCase,
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

	anonLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimitAnonEnabled {
		anonLimit = authHTTP.IPRateLimitMiddleware(ctx, cfg.RateLimitAnonRequestsPerSec, cfg.RateLimitAnonBurst, s.logger)
	}

	v1 := router.Group("/v1")

	organizations := v1.Group("/organizations")
	{
		organizations.POST("", anonLimit, organizationHandler.SignupHandler)
		organizations.GET("/:id", organizationHandler.GetHandler)
		organizations.GET("/:id/public-key", organizationHandler.GetPublicKeyHandler)
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/login", anonLimit, loginHandler.LoginHandler)
		auth.GET(
			"/session-key",
			authHTTP.AuthenticationMiddleware(loginUseCase, s.logger),
			loginHandler.SessionKeyHandler,
		)
	}

	channels := v1.Group("/channels")
	{
		channels.GET("/by-access-code/:code", anonLimit, channelHandler.ResolveHandler)
		channels.POST("/by-access-code/:code/cases", anonLimit, caseHandler.SubmitHandler)
	}

	memberChannels := channels.Group("", authHTTP.AuthenticationMiddleware(loginUseCase, s.logger))
	{
		memberChannels.POST("", channelHandler.CreateHandler)
		memberChannels.GET("", channelHandler.ListHandler)
		memberChannels.GET("/access-code-availability", channelHandler.CheckAccessCodeHandler)
		memberChannels.POST("/access-codes", channelHandler.GenerateAccessCodeHandler)
		memberChannels.GET("/:id", channelHandler.GetHandler)
		memberChannels.PATCH("/:id", channelHandler.UpdateHandler)
		memberChannels.DELETE("/:id", channelHandler.DeleteHandler)
	}

	cases := v1.Group("/cases")
	cases.Use(authHTTP.OptionalAuthenticationMiddleware(loginUseCase, s.logger))
	cases.Use(skipWhenAuthenticated(anonLimit))
	{
		cases.GET("", caseHandler.ListHandler)
		cases.GET("/stats", caseHandler.StatsHandler)
		cases.GET("/:id", caseHandler.GetHandler)
		cases.PATCH("/:id/status", caseHandler.UpdateStatusHandler)
		cases.POST("/:id/messages", caseHandler.SendMessageHandler)
		cases.POST("/:id/attachments", caseHandler.UploadAttachmentHandler)
		cases.GET("/:id/attachments/:attachmentID", caseHandler.DownloadAttachmentHandler)
	}

	s.router = router
}

// skipWhenAuthenticated runs next only for requests without a member session.
func skipWhenAuthenticated(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authHTTP.GetSession(c.Request.Context()); ok {
			c.Next()
			return
		}
		next(c)
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not initialized, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// readinessHandler reports per-component readiness. The database is always checked.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{}
	ready := true

	if s.db == nil || s.db.PingContext(ctx) != nil {
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	for name, check := range s.checks {
		if err := check.Ready(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
