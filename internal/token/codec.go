// File: internal/token/codec.go
package token

import (
	"fmt"
	"time"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/config"
	"github.com/McLeroy/loops-api/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const issuer = "loops-api"

// JWTCodec signs user snapshots into session tokens with a symmetric secret.
// Tokens carry no expiry; session lifetime is bounded by the token store
// (overwrite or revoke), not by the claims.
type JWTCodec struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTCodec creates a new JWT codec.
func NewJWTCodec(cfg *config.Config, logger *zap.Logger) shared.Codec {
	return &JWTCodec{cfg: cfg, logger: logger}
}

func (c *JWTCodec) Sign(user shared.UserSnapshot) (string, error) {
	claims := &shared.Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   issuer,
			Subject:  user.ID.String(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(c.cfg.JWTSecretKey))
	if err != nil {
		c.logger.Error("Failed to sign session token", zap.Error(err))
		return "", fmt.Errorf("could not sign session token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Verify(tokenString string) (*shared.UserSnapshot, error) {
	claims := &shared.Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(c.cfg.JWTSecretKey), nil
	})
	if err != nil {
		c.logger.Warn("Token verification failed", zap.Error(err))
		return nil, common.ErrInvalidToken.WithDetails(err.Error())
	}
	if !parsed.Valid {
		return nil, common.ErrInvalidToken
	}
	return &claims.User, nil
}
