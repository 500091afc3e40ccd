// File: internal/verification/service.go
package verification

import (
	"context"
	"time"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/config"
	"github.com/McLeroy/loops-api/internal/notification"
	"github.com/McLeroy/loops-api/internal/platform/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service coordinates verification codes: minting, dispatch, strict lookup
// with the unverified -> verified transition, and removal once consumed.
type Service interface {
	// Request mints a fresh code for (email, reason), replacing any prior
	// record for the pair, and dispatches it. Dispatch failures are logged
	// but not surfaced so callers cannot probe for account existence.
	Request(ctx context.Context, email string, reason Reason) error
	// Get looks up the record matching (email, reason, code) exactly;
	// absence and expiry both fail. With markVerified it performs the
	// unverified -> verified transition.
	Get(ctx context.Context, email string, reason Reason, code string, markVerified bool) (*Verification, error)
	// Remove deletes a consumed record.
	Remove(ctx context.Context, id uuid.UUID) error
	// RemoveExpired sweeps records whose lifetime has passed.
	RemoveExpired(ctx context.Context) (int64, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	repo   Repository
	sender notification.Sender
	cfg    *config.Config
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new verification service.
func NewService(
	repo Repository,
	sender notification.Sender,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *ServiceImplementation) Request(ctx context.Context, email string, reason Reason) error {
	code, err := crypto.GenerateNumericCode(s.cfg.VerificationCodeLength)
	if err != nil {
		return err
	}

	// A new request always supersedes any outstanding code for the pair.
	if err := s.repo.DeleteByEmailAndReason(ctx, email, reason); err != nil {
		return err
	}

	record := &Verification{
		Email:     email,
		Reason:    reason,
		Code:      code,
		Verified:  false,
		ExpiresAt: time.Now().Add(s.cfg.VerificationCodeTTL),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, email, code, string(reason)); err != nil {
		// Dispatch outcome is never surfaced to the caller.
		s.logger.Warn("Failed to dispatch verification code",
			zap.Error(err),
			zap.String("email", email),
			zap.String("reason", string(reason)),
		)
	}
	return nil
}

func (s *ServiceImplementation) Get(ctx context.Context, email string, reason Reason, code string, markVerified bool) (*Verification, error) {
	record, err := s.repo.FindByCode(ctx, email, reason, code)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, common.ErrNotFound.WithDetails("Verification code is invalid.")
	}
	if record.Expired(time.Now()) {
		return nil, common.ErrValidation.WithDetails("Verification code has expired.")
	}
	if markVerified && !record.Verified {
		record.Verified = true
		if err := s.repo.Update(ctx, record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (s *ServiceImplementation) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImplementation) RemoveExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now())
}
