// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/password"
	"github.com/McLeroy/loops-api/internal/platformconfig"
	"github.com/McLeroy/loops-api/internal/shared"
	"github.com/McLeroy/loops-api/internal/user"
	"github.com/McLeroy/loops-api/internal/verification"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Service is the auth core: it orchestrates login, registration, profile
// assignment, role addition, token issuance and the email-verification state
// machine. All persistence and policy access goes through the injected
// collaborator interfaces.
type Service struct {
	users         user.Repository
	passwords     password.Service
	tokens        shared.TokenService
	codec         shared.Codec
	verifications verification.Service
	policy        platformconfig.Provider
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	users user.Repository,
	passwords password.Service,
	tokens shared.TokenService,
	codec shared.Codec,
	verifications verification.Service,
	policy platformconfig.Provider,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:         users,
		passwords:     passwords,
		tokens:        tokens,
		codec:         codec,
		verifications: verifications,
		policy:        policy,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Register creates a new account with the role-appropriate profile, stores
// the password hash separately from the user record, issues a session token
// for the device and fires the sign-up email verification.
func (s *Service) Register(ctx context.Context, req *RegisterRequest, role, deviceID string) (*Result, error) {
	if req.FirstName == "" {
		return nil, common.ErrValidation.WithDetails("First name is required.")
	}
	if req.LastName == "" {
		return nil, common.ErrValidation.WithDetails("Last name is required.")
	}
	if req.Email == "" {
		return nil, common.ErrValidation.WithDetails("Email address is required.")
	}
	if req.Phone == "" {
		return nil, common.ErrValidation.WithDetails("Phone number is required.")
	}
	if req.Password == "" {
		return nil, common.ErrValidation.WithDetails("Password is required.")
	}

	count, err := s.users.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.ErrConflict.WithDetails("Email address already in use.")
	}
	count, err = s.users.CountByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, common.ErrConflict.WithDetails("Phone number already in use.")
	}

	// The payload role, when present, overrides the role argument for the
	// stored role set; profile assignment still follows the role argument.
	storedRole := role
	if req.Role != "" {
		storedRole = req.Role
	}

	now := time.Now()
	u := &user.User{
		BaseModel: common.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Roles:     pq.StringArray{storedRole},
	}

	if err := s.assignProfile(ctx, role, u, req.Type, nil); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(u); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return nil, common.NewValidationAPIError(common.FormatValidationErrors(ve))
		}
		return nil, common.ErrValidation.WithDetails(err.Error())
	}

	if err := s.passwords.Set(ctx, u.ID, req.Password); err != nil {
		return nil, err
	}

	// Token generation depends only on the user shape, so issuance may
	// precede the final save.
	token, err := s.tokens.Issue(ctx, u.Snapshot(), role, deviceID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	go func() {
		if err := s.verifications.Request(context.Background(), u.Email, verification.ReasonSignUp); err != nil {
			s.logger.Warn("Sign-up verification request failed",
				zap.Error(err),
				zap.String("email", u.Email),
			)
		}
	}()

	s.logger.Info("User registered",
		zap.String("userID", u.ID.String()),
		zap.String("role", role),
	)
	return &Result{User: u, Token: token}, nil
}

// Login authenticates by email and password, refreshes the role profile
// without regenerating an existing one, and issues a session token for the
// device, overwriting any prior token for the same tuple.
func (s *Service) Login(ctx context.Context, req *LoginRequest, role, deviceID string) (*Result, error) {
	if req.Email == "" {
		return nil, common.ErrValidation.WithDetails("Email address is required.")
	}
	if req.Password == "" {
		return nil, common.ErrValidation.WithDetails("Password is required.")
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	ok, err := s.passwords.Check(ctx, u.ID, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("Invalid password attempt", zap.String("userID", u.ID.String()))
		return nil, common.ErrAuth
	}

	var driverType user.DriverType
	if u.DriverProfile != nil {
		driverType = u.DriverProfile.Type
	}
	if err := s.assignProfile(ctx, role, u, driverType, u); err != nil {
		return nil, err
	}
	u.AddRole(role)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	refreshed, err := s.users.FindByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(ctx, refreshed.Snapshot(), role, deviceID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("userID", refreshed.ID.String()),
		zap.String("role", role),
	)
	return &Result{User: refreshed, Token: token}, nil
}

// AddToRole decodes the presented token to recover the user identity and
// adds the role to the user's role set. The same token string is echoed
// back; no new token is issued.
func (s *Service) AddToRole(ctx context.Context, req *AddToRoleRequest) (*Result, error) {
	if req.Role == "" {
		return nil, common.ErrValidation.WithDetails("Role is required.")
	}
	if req.Token == "" {
		return nil, common.ErrValidation.WithDetails("Token is required.")
	}

	snapshot, err := s.codec.Verify(req.Token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}
	u.AddRole(req.Role)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	return &Result{User: u, Token: req.Token}, nil
}

// RequestEmailVerification mints and dispatches a verification code. The
// acknowledgment is generic regardless of dispatch outcome.
func (s *Service) RequestEmailVerification(ctx context.Context, req *VerificationRequest) (string, error) {
	if req.Email == "" {
		return "", common.ErrValidation.WithDetails("Email address is required.")
	}
	if req.Reason == "" {
		return "", common.ErrValidation.WithDetails("Verification reason is required.")
	}
	if err := s.verifications.Request(ctx, req.Email, verification.Reason(req.Reason)); err != nil {
		return "", err
	}
	return "Verification code sent", nil
}

// VerifyEmail confirms a verification code. For sign-up the user's email is
// marked verified and the record is consumed. For password-reset the record
// stays verified for the subsequent reset step and a nil user is returned:
// confirmation is not a login.
func (s *Service) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) (*user.User, string, error) {
	if req.Email == "" {
		return nil, "", common.ErrValidation.WithDetails("Email address is required.")
	}
	if req.Reason == "" {
		return nil, "", common.ErrValidation.WithDetails("Verification reason is required.")
	}
	if req.VerificationCode == "" {
		return nil, "", common.ErrValidation.WithDetails("Verification code is required.")
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}

	reason := verification.Reason(req.Reason)
	record, err := s.verifications.Get(ctx, req.Email, reason, req.VerificationCode, true)
	if err != nil {
		return nil, "", err
	}

	switch reason {
	case verification.ReasonSignUp:
		u.EmailVerified = true
		if err := s.users.Update(ctx, u); err != nil {
			return nil, "", err
		}
		if err := s.verifications.Remove(ctx, record.ID); err != nil {
			return nil, "", err
		}
	case verification.ReasonPasswordReset:
		u = nil
	default:
		return nil, "", common.ErrUnsupported.WithDetails(
			fmt.Sprintf("Unsupported email verification reason '%s'.", reason))
	}

	return u, req.VerificationCode, nil
}

// RequestPasswordReset mints a password-reset code for an existing account.
func (s *Service) RequestPasswordReset(ctx context.Context, req *PasswordResetRequest) (string, error) {
	if req.Email == "" {
		return "", common.ErrValidation.WithDetails("Email address is required.")
	}
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if err := s.verifications.Request(ctx, u.Email, verification.ReasonPasswordReset); err != nil {
		return "", err
	}
	return req.Email, nil
}

// ResetPassword replaces the stored password hash once the reset code has
// been verified via VerifyEmail, consumes the verification record and logs
// the user in with the new password. A non-deleted verified reset record is
// the only valid precondition for this step.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest, role, deviceID string) (*Result, error) {
	if req.Email == "" {
		return nil, common.ErrValidation.WithDetails("Email address is required.")
	}
	if req.VerificationCode == "" {
		return nil, common.ErrValidation.WithDetails("Verification code is required.")
	}
	if req.Password == "" {
		return nil, common.ErrValidation.WithDetails("Password is required.")
	}

	record, err := s.verifications.Get(ctx, req.Email, verification.ReasonPasswordReset, req.VerificationCode, false)
	if err != nil {
		return nil, err
	}
	if !record.Verified {
		return nil, common.ErrValidation.WithDetails("Email not verified.")
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.passwords.Set(ctx, u.ID, req.Password); err != nil {
		return nil, err
	}
	if err := s.verifications.Remove(ctx, record.ID); err != nil {
		return nil, err
	}

	return s.Login(ctx, &LoginRequest{Email: req.Email, Password: req.Password}, role, deviceID)
}

// RevokeAllSessions deletes every session token for the user across all
// roles and devices.
func (s *Service) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeAll(ctx, userID)
}

// assignProfile resolves the role-appropriate profile under current
// platform policy and attaches it to u. An existing profile is never
// overwritten with a blank one.
func (s *Service) assignProfile(ctx context.Context, role string, u *user.User, driverType user.DriverType, existing *user.User) error {
	policy, err := s.policy.Current(ctx)
	if err != nil {
		return err
	}

	if role == common.RoleDriver {
		if !user.IsSupportedDriverType(driverType) {
			return common.ErrValidation.WithDetails(fmt.Sprintf("Unknown driver type: %s", driverType))
		}
		if existing == nil && !policy.AllowNewDriverSignUp {
			return common.ErrPolicy.WithDetails("New driver sign up is temporarily suspended.")
		}
		if existing != nil && existing.DriverProfile != nil {
			u.DriverProfile = existing.DriverProfile
		} else {
			profile := user.NewDriverProfile(driverType)
			profile.UserID = u.ID
			u.DriverProfile = profile
		}
		return nil
	}

	if existing == nil && !policy.AllowNewRiderSignUp {
		return common.ErrPolicy.WithDetails("New user sign up is temporarily suspended.")
	}
	if existing != nil && existing.RiderProfile != nil {
		u.RiderProfile = existing.RiderProfile
	} else {
		profile := user.NewRiderProfile()
		profile.UserID = u.ID
		u.RiderProfile = profile
	}
	return nil
}
