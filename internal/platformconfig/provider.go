// File: internal/platformconfig/provider.go
package platformconfig

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Provider exposes the current sign-up gating flags. Implementations must
// read fresh state on every call; the snapshot is never cached across
// requests, so gating changes take effect immediately.
type Provider interface {
	Current(ctx context.Context) (*Snapshot, error)
}

type gormProvider struct {
	db *gorm.DB
}

// NewGORMProvider creates a new GORM-backed policy provider.
func NewGORMProvider(db *gorm.DB) Provider {
	return &gormProvider{db: db}
}

// Current fetches the latest configuration row. A missing row means the
// platform has never been configured; sign-ups default to allowed.
func (p *gormProvider) Current(ctx context.Context) (*Snapshot, error) {
	var cfg Configuration
	err := p.db.WithContext(ctx).Order("created_at DESC").First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Snapshot{AllowNewDriverSignUp: true, AllowNewRiderSignUp: true}, nil
		}
		return nil, err
	}
	return &Snapshot{
		AllowNewDriverSignUp: cfg.AllowNewDriverSignUp,
		AllowNewRiderSignUp:  cfg.AllowNewRiderSignUp,
	}, nil
}
