// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"github.com/McLeroy/loops-api/internal/app"
	"github.com/McLeroy/loops-api/internal/auth"
	"github.com/McLeroy/loops-api/internal/config"
	"github.com/McLeroy/loops-api/internal/jobs"
	"github.com/McLeroy/loops-api/internal/notification"
	"github.com/McLeroy/loops-api/internal/password"
	"github.com/McLeroy/loops-api/internal/platform/database"
	"github.com/McLeroy/loops-api/internal/platform/logger"
	"github.com/McLeroy/loops-api/internal/platformconfig"
	"github.com/McLeroy/loops-api/internal/shared"
	"github.com/McLeroy/loops-api/internal/token"
	"github.com/McLeroy/loops-api/internal/user"
	"github.com/McLeroy/loops-api/internal/verification"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Identity
		user.NewGORMRepository,
		password.NewGORMService,

		// Sessions
		token.NewGORMRepository,
		token.NewJWTCodec,
		token.NewService,
		wire.Bind(new(shared.TokenService), new(*token.Service)),

		// Sign-up policy
		platformconfig.NewGORMProvider,

		// Email verification
		notification.NewSMTPMailer,
		wire.Bind(new(notification.Sender), new(*notification.SMTPMailer)),
		verification.NewGORMRepository,
		verification.NewService,
		wire.Bind(new(verification.Service), new(*verification.ServiceImplementation)),

		// Auth
		auth.NewService,
		auth.NewHandler,
		user.NewHandler,

		// Background jobs
		jobs.NewVerificationCleanupJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
