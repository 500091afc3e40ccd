// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// DeviceIDHeader carries the caller's device identifier
	DeviceIDHeader = "X-Device-ID"
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// UserSnapshotKey stores the decoded token user shape
	UserSnapshotKey = "userSnapshot"
	// SessionRoleKey is the context key for the session's role
	SessionRoleKey = "sessionRole"
)

// AuthMiddleware authenticates requests by decoding the bearer token and
// requiring a live session record for (token, device) in the token store.
func AuthMiddleware(codec shared.Codec, tokens shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}
		tokenString := parts[1]
		deviceID := c.GetHeader(DeviceIDHeader)

		snapshot, err := codec.Verify(tokenString)
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			common.RespondWithError(c, err)
			return
		}

		session, err := tokens.Get(c.Request.Context(), tokenString, deviceID, true)
		if err != nil {
			logger.Warn("No live session for token",
				zap.String("userID", snapshot.ID.String()),
				zap.String("deviceID", deviceID),
			)
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session is no longer active."))
			return
		}

		c.Set(UserIDKey, snapshot.ID)
		c.Set(UserSnapshotKey, snapshot)
		c.Set(SessionRoleKey, session.Role)

		c.Next()
	}
}

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found or not a UUID.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserSnapshotFromContext retrieves the decoded token user shape.
func GetUserSnapshotFromContext(c *gin.Context) *shared.UserSnapshot {
	val, exists := c.Get(UserSnapshotKey)
	if !exists {
		return nil
	}
	snapshot, ok := val.(*shared.UserSnapshot)
	if !ok {
		return nil
	}
	return snapshot
}

// GetSessionRoleFromContext retrieves the session's role from the Gin context.
func GetSessionRoleFromContext(c *gin.Context) string {
	val, exists := c.Get(SessionRoleKey)
	if !exists {
		return ""
	}
	role, ok := val.(string)
	if !ok {
		return ""
	}
	return role
}
