package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/auth"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/pkg/crypto"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
	"github.com/dvcruz/progtrack/pkg/metrics"
)

// LoginInput carries the credentials supplied at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UpdateProfileInput enumerates self-service profile fields.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

// AuthService authenticates users and records the resulting domain events
// (login, logout, password and profile changes) on the audit trail.
type AuthService struct {
	db       *gorm.DB
	jwt      *auth.JWTService
	recorder *audit.Recorder
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, jwtService *auth.JWTService, recorder *audit.Recorder) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}
	if jwtService == nil {
		return nil, errors.New("auth service: jwt service is required")
	}
	return &AuthService{db: db, jwt: jwtService, recorder: recorder}, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).Preload("College").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.AuthAttempts.WithLabelValues("failure").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: lookup user: %w", err)
	}

	if !user.IsActive || !crypto.VerifyPassword(user.Password, input.Password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("auth service: stamp login: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(auth.AccessTokenInput{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("auth service: issue token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	s.recorder.RecordEvent(s.asActor(ctx, &user), audit.ActionLogin, models.KindUser, user.ID, nil, nil)

	return &LoginResult{Token: token, User: &user}, nil
}

// Logout records the logout event for the acting user. Tokens are stateless,
// so the entry is the only server-side trace of the logout.
func (s *AuthService) Logout(ctx context.Context) error {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}

	s.recorder.RecordEvent(ctx, audit.ActionLogout, models.KindUser, actor.UserID, nil, nil)
	return nil
}

// CurrentUser loads the acting user's account.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var user models.User
	err := s.db.WithContext(ctx).Preload("College").First(&user, "id = ?", actor.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth service: load current user: %w", err)
	}
	return &user, nil
}

// ChangePassword verifies the current password before storing the new hash.
// The audit event only marks that the password changed; password contents
// never reach the trail.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	ctx = ensureContext(ctx)

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if !crypto.VerifyPassword(user.Password, currentPassword) {
		return apperrors.ErrPasswordMismatch
	}
	if len(newPassword) < 8 {
		return apperrors.NewValidation("password must be at least 8 characters")
	}

	hashed, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth service: hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(user).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("auth service: update password: %w", err)
	}

	s.recorder.RecordEvent(ctx, audit.ActionUpdatePassword, models.KindUser, user.ID, nil,
		map[string]any{"password_changed": true})
	return nil
}

// UpdateProfile applies self-service profile edits and records the field diff.
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	previous := user.AuditAttributes()

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("auth service: update profile: %w", err)
	}

	change := audit.Diff(previous, user.AuditAttributes(), user.AuditExclusions())
	if !change.Empty() {
		s.recorder.Record(ctx, audit.ActionUpdateProfile, models.KindUser, user.ID, change)
	}

	return user, nil
}

// asActor stamps the freshly authenticated user onto the request actor so the
// login event is attributed even though the request itself was anonymous.
func (s *AuthService) asActor(ctx context.Context, user *models.User) context.Context {
	actor, _ := auditctx.FromContext(ctx)
	actor.UserID = user.ID
	actor.Role = user.Role
	return auditctx.WithActor(ctx, actor)
}
