// File: internal/jobs/verification_cleanup.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/McLeroy/loops-api/internal/config"
	"github.com/McLeroy/loops-api/internal/verification"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// VerificationCleanupJob periodically deletes expired verification codes.
type VerificationCleanupJob struct {
	verifications verification.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewVerificationCleanupJob creates a new VerificationCleanupJob.
func NewVerificationCleanupJob(
	verifications verification.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *VerificationCleanupJob {
	scheduler := cron.New(cron.WithLogger(newCronLogger(logger.Named("cron"))))

	return &VerificationCleanupJob{
		verifications: verifications,
		logger:        logger.Named("VerificationCleanupJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *VerificationCleanupJob) SetupAndStart() error {
	jobSpec := j.cfg.VerificationCleanupSchedule
	if jobSpec == "" {
		j.logger.Warn("Verification cleanup schedule not defined (VERIFICATION_CLEANUP_SCHEDULE). Job will not run.")
		return nil
	}

	_, err := j.cronScheduler.AddFunc(jobSpec, j.run)
	if err != nil {
		return fmt.Errorf("failed to schedule verification cleanup job: %w", err)
	}

	j.cronScheduler.Start()
	j.logger.Info("Verification cleanup job scheduled.", zap.String("schedule", jobSpec))
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (j *VerificationCleanupJob) Stop() {
	ctx := j.cronScheduler.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		j.logger.Warn("Timed out waiting for verification cleanup job to stop.")
	}
}

func (j *VerificationCleanupJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := j.verifications.RemoveExpired(ctx)
	if err != nil {
		j.logger.Error("Verification cleanup sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("Removed expired verification codes", zap.Int64("count", removed))
	}
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	logger *zap.Logger
}

func newCronLogger(logger *zap.Logger) cron.Logger {
	return &cronLogger{logger: logger}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
