// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/McLeroy/loops-api/internal/auth"
	"github.com/McLeroy/loops-api/internal/config"
	"github.com/McLeroy/loops-api/internal/jobs"
	"github.com/McLeroy/loops-api/internal/middleware"
	"github.com/McLeroy/loops-api/internal/password"
	"github.com/McLeroy/loops-api/internal/platformconfig"
	"github.com/McLeroy/loops-api/internal/shared"
	"github.com/McLeroy/loops-api/internal/token"
	"github.com/McLeroy/loops-api/internal/user"
	"github.com/McLeroy/loops-api/internal/verification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler *auth.Handler
	userHandler *user.Handler

	// Jobs
	cleanupJob *jobs.VerificationCleanupJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	cleanupJob *jobs.VerificationCleanupJob,
	db *gorm.DB,
	codec shared.Codec,
	tokens shared.TokenService,
) (*Server, error) {
	if err := db.AutoMigrate(
		&user.User{},
		&user.DriverProfile{},
		&user.RiderProfile{},
		&password.Credential{},
		&token.AuthToken{},
		&verification.Verification{},
		&platformconfig.Configuration{},
	); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader, middleware.DeviceIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	authMW := middleware.AuthMiddleware(codec, tokens, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Loops API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)

	usersGroup := v1.Group("/users", authMW)
	userHandler.RegisterRoutes(usersGroup)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}

	return &Server{
		httpServer:  httpServer,
		router:      router,
		cfg:         cfg,
		logger:      logger,
		authHandler: authHandler,
		userHandler: userHandler,
		cleanupJob:  cleanupJob,
	}, nil
}

// Start begins listening and starts background jobs.
func (s *Server) Start() error {
	if err := s.cleanupJob.SetupAndStart(); err != nil {
		return err
	}
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server and background jobs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cleanupJob.Stop()
	return s.httpServer.Shutdown(ctx)
}
