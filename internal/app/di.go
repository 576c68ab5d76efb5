// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	authHTTP "github.com/whistlebase/whistlebase/internal/auth/http"
	authService "github.com/whistlebase/whistlebase/internal/auth/service"
	authUseCase "github.com/whistlebase/whistlebase/internal/auth/usecase"
	casesHTTP "github.com/whistlebase/whistlebase/internal/cases/http"
	"github.com/whistlebase/whistlebase/internal/cases/storage"
	casesUseCase "github.com/whistlebase/whistlebase/internal/cases/usecase"
	channelsHTTP "github.com/whistlebase/whistlebase/internal/channels/http"
	channelsUseCase "github.com/whistlebase/whistlebase/internal/channels/usecase"
	"github.com/whistlebase/whistlebase/internal/config"
	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
	cryptoUseCase "github.com/whistlebase/whistlebase/internal/crypto/usecase"
	"github.com/whistlebase/whistlebase/internal/database"
	"github.com/whistlebase/whistlebase/internal/http"
	"github.com/whistlebase/whistlebase/internal/metrics"
	orgHTTP "github.com/whistlebase/whistlebase/internal/organization/http"
	orgUseCase "github.com/whistlebase/whistlebase/internal/organization/usecase"
)

const dbConnectTimeout = 10 * time.Second

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	blobStore       *storage.BlobStore
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Crypto
	cryptoProvider    *cryptoService.Provider
	aeadManager       cryptoService.AEADManager
	keyPairService    *cryptoService.KeyPairService
	contentSealer     *cryptoService.ContentSealerService
	messageCipher     *cryptoService.MessageCipherService
	attachmentCipher  *cryptoService.AttachmentCipherService
	passwordKeyWrap   *cryptoService.PasswordKeyWrapService
	sessionKeyCustody *cryptoService.SessionKeyCustodyService
	reporterUseCase   cryptoUseCase.ReporterUseCase
	custodianUseCase  cryptoUseCase.CustodianUseCase

	// Repositories
	organizationRepo orgUseCase.OrganizationRepository
	memberRepo       orgUseCase.MemberRepository
	channelRepo      channelsUseCase.ChannelRepository
	caseRepo         casesUseCase.CaseRepository
	messageRepo      casesUseCase.MessageRepository
	attachmentRepo   casesUseCase.AttachmentRepository

	// Services
	passwordService     authService.PasswordService
	sessionTokenService authService.SessionTokenService

	// Use Cases
	organizationUseCase orgUseCase.OrganizationUseCase
	loginUseCase        authUseCase.LoginUseCase
	channelUseCase      channelsUseCase.ChannelUseCase
	caseUseCase         casesUseCase.CaseUseCase

	// Handlers
	organizationHandler *orgHTTP.OrganizationHandler
	loginHandler        *authHTTP.LoginHandler
	channelHandler      *channelsHTTP.ChannelHandler
	caseHandler         *casesHTTP.CaseHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	blobStoreInit           sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	txManagerInit           sync.Once
	cryptoProviderInit      sync.Once
	aeadManagerInit         sync.Once
	keyPairServiceInit      sync.Once
	contentSealerInit       sync.Once
	messageCipherInit       sync.Once
	attachmentCipherInit    sync.Once
	passwordKeyWrapInit     sync.Once
	sessionKeyCustodyInit   sync.Once
	reporterUseCaseInit     sync.Once
	custodianUseCaseInit    sync.Once
	organizationRepoInit    sync.Once
	memberRepoInit          sync.Once
	channelRepoInit         sync.Once
	caseRepoInit            sync.Once
	messageRepoInit         sync.Once
	attachmentRepoInit      sync.Once
	passwordServiceInit     sync.Once
	sessionTokenServiceInit sync.Once
	organizationUseCaseInit sync.Once
	loginUseCaseInit        sync.Once
	channelUseCaseInit      sync.Once
	caseUseCaseInit         sync.Once
	organizationHandlerInit sync.Once
	loginHandlerInit        sync.Once
	channelHandlerInit      sync.Once
	caseHandlerInit         sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// BlobStore returns the attachment blob store opened from BlobBucketURL.
func (c *Container) BlobStore() (*storage.BlobStore, error) {
	var err error
	c.blobStoreInit.Do(func() {
		c.blobStore, err = storage.OpenBlobStore(context.Background(), c.config.BlobBucketURL)
		if err != nil {
			c.initErrors["blobStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blobStore"]; exists {
		return nil, storedErr
	}
	return c.blobStore, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op recorder when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server with its router set up. The context bounds
// background work started by middleware such as the rate limiter cleanup.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.blobStore != nil {
		if err := c.blobStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("blob store close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initHTTPServer creates the HTTP server and wires every handler into its router.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	organizationHandler, err := c.OrganizationHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization handler for http server: %w", err)
	}

	loginHandler, err := c.LoginHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get login handler for http server: %w", err)
	}

	channelHandler, err := c.ChannelHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel handler for http server: %w", err)
	}

	caseHandler, err := c.CaseHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get case handler for http server: %w", err)
	}

	loginUseCase, err := c.LoginUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get login use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.RegisterReadinessCheck("crypto", c.CryptoProvider())
	server.SetupRouter(
		ctx,
		c.config,
		organizationHandler,
		loginHandler,
		channelHandler,
		caseHandler,
		loginUseCase,
		metricsProvider,
	)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
