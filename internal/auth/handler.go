// File: internal/auth/handler.go
package auth

import (
	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/middleware"
	"github.com/McLeroy/loops-api/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeviceIDHeader carries the caller's device identifier; sessions are
// scoped per (user, role, device).
const DeviceIDHeader = "X-Device-ID"

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/:role/register", h.register)
		authGroup.POST("/:role/login", h.login)
		authGroup.POST("/:role/password/reset", h.resetPassword)
		authGroup.POST("/role", h.addToRole)
		authGroup.POST("/verification/request", h.requestVerification)
		authGroup.POST("/verification/confirm", h.verifyEmail)
		authGroup.POST("/password/reset-request", h.requestPasswordReset)
		authGroup.POST("/logout-all", authMW, h.logoutAll)
	}
}

func roleParam(c *gin.Context) (string, bool) {
	role := c.Param("role")
	if !common.KnownRole(role) {
		common.RespondWithError(c, common.ErrValidation.WithDetails("Unknown role: "+role))
		return "", false
	}
	return role, true
}

func (h *Handler) register(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req, role, c.GetHeader(DeviceIDHeader))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Registration successful.", gin.H{
		"user":  user.ToResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) login(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req, role, c.GetHeader(DeviceIDHeader))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Login successful.", gin.H{
		"user":  user.ToResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) addToRole(c *gin.Context) {
	var req AddToRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	result, err := h.service.AddToRole(c.Request.Context(), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Role added.", gin.H{
		"user":  user.ToResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) requestVerification(c *gin.Context) {
	var req VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	message, err := h.service.RequestEmailVerification(c.Request.Context(), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, message, nil)
}

func (h *Handler) verifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	u, code, err := h.service.VerifyEmail(c.Request.Context(), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Email verified.", gin.H{
		"user":              user.ToResponse(u),
		"verification_code": code,
	})
}

func (h *Handler) requestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	email, err := h.service.RequestPasswordReset(c.Request.Context(), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Password reset code sent.", gin.H{"email": email})
}

func (h *Handler) resetPassword(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	result, err := h.service.ResetPassword(c.Request.Context(), &req, role, c.GetHeader(DeviceIDHeader))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Password reset successful.", gin.H{
		"user":  user.ToResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) logoutAll(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	if err := h.service.RevokeAllSessions(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
