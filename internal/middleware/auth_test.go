package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCodec struct {
	mock.Mock
}

func (m *mockCodec) Sign(u shared.UserSnapshot) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *mockCodec) Verify(token string) (*shared.UserSnapshot, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.UserSnapshot), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, u shared.UserSnapshot, role, deviceID string) (string, error) {
	args := m.Called(ctx, u, role, deviceID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(ctx context.Context, userID uuid.UUID, deviceID, token string) (*shared.Session, error) {
	args := m.Called(ctx, userID, deviceID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Session), args.Error(1)
}

func (m *mockTokenService) Get(ctx context.Context, token, deviceID string, strict bool) (*shared.Session, error) {
	args := m.Called(ctx, token, deviceID, strict)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Session), args.Error(1)
}

func (m *mockTokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func setupAuthTest(t *testing.T) (*gin.Engine, *mockCodec, *mockTokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := new(mockCodec)
	tokens := new(mockTokenService)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(codec, tokens, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserIDFromContext(c).String(),
			"role":    GetSessionRoleFromContext(c),
		})
	})
	return router, codec, tokens
}

func TestAuthMiddleware_Success(t *testing.T) {
	router, codec, tokens := setupAuthTest(t)

	userID := uuid.New()
	snapshot := &shared.UserSnapshot{ID: userID, Email: "abel@example.com", Roles: []string{common.RoleRider}}
	session := &shared.Session{UserID: userID, Role: common.RoleRider, DeviceID: "device-1", Token: "live-token"}

	codec.On("Verify", "live-token").Return(snapshot, nil)
	tokens.On("Get", mock.Anything, "live-token", "device-1", true).Return(session, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer live-token")
	req.Header.Set(DeviceIDHeader, "device-1")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), common.RoleRider)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	router, codec, _ := setupAuthTest(t)

	codec.On("Verify", "forged").Return(nil, common.ErrInvalidToken.WithDetails("signature is invalid"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer forged")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

// A token that decodes fine but has been overwritten or revoked in the
// store is rejected: the session record is the source of truth.
func TestAuthMiddleware_RevokedSession(t *testing.T) {
	router, codec, tokens := setupAuthTest(t)

	snapshot := &shared.UserSnapshot{ID: uuid.New(), Email: "abel@example.com"}
	codec.On("Verify", "stale-token").Return(snapshot, nil)
	tokens.On("Get", mock.Anything, "stale-token", "device-1", true).
		Return(nil, common.ErrNotFound.WithDetails("Auth token not found."))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer stale-token")
	req.Header.Set(DeviceIDHeader, "device-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session is no longer active.")
}
