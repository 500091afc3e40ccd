// File: internal/token/service.go
package token

import (
	"context"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements shared.TokenService over the repository and codec.
type Service struct {
	repo   Repository
	codec  shared.Codec
	logger *zap.Logger
}

var _ shared.TokenService = (*Service)(nil)

// NewService creates a new token service.
func NewService(repo Repository, codec shared.Codec, logger *zap.Logger) *Service {
	return &Service{repo: repo, codec: codec, logger: logger}
}

// Issue signs a token for the user snapshot and upserts it, overwriting any
// prior token for the same (user, role, device) tuple.
func (s *Service) Issue(ctx context.Context, user shared.UserSnapshot, role, deviceID string) (string, error) {
	signed, err := s.codec.Sign(user)
	if err != nil {
		return "", err
	}
	record := &AuthToken{
		UserID:   user.ID,
		Role:     role,
		DeviceID: deviceID,
		Token:    signed,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Error("Failed to upsert auth token",
			zap.Error(err),
			zap.String("userID", user.ID.String()),
			zap.String("role", role),
			zap.String("deviceID", deviceID),
		)
		return "", err
	}
	return record.Token, nil
}

// Verify looks a token up by (user, device, token). Existence implies
// validity; no expiry is enforced at this layer.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, deviceID, token string) (*shared.Session, error) {
	s.logger.Debug("Verifying token",
		zap.String("userID", userID.String()),
		zap.String("deviceID", deviceID),
	)
	record, err := s.repo.Find(ctx, userID, deviceID, token)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, common.ErrNotFound.WithDetails("Auth token not found.")
	}
	return record.Session(), nil
}

// Get looks a token up by (token, device) only. In strict mode absence
// fails with a not-found error; in lenient mode it returns nil.
func (s *Service) Get(ctx context.Context, token, deviceID string, strict bool) (*shared.Session, error) {
	record, err := s.repo.FindByToken(ctx, token, deviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		if strict {
			return nil, common.ErrNotFound.WithDetails("Auth token not found.")
		}
		return nil, nil
	}
	return record.Session(), nil
}

// RevokeAll deletes every token for a user across all roles and devices.
func (s *Service) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllForUser(ctx, userID)
}
