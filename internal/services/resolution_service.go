package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/pkg/crypto"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
)

// ErrResolutionNotFound indicates the requested resolution does not exist.
var ErrResolutionNotFound = apperrors.New("RESOLUTION_NOT_FOUND", "Resolution not found", http.StatusNotFound)

// ResolutionInput describes a resolution create or update payload.
type ResolutionInput struct {
	ResolutionNumber   string
	Effectivity        time.Time
	Expiration         time.Time
	ContactPerson      string
	ContactNumberEmail string
	PartnerAgency      string
	AttachmentLink     string
}

// ResolutionService manages board resolutions. Resolutions are audited like
// every tracked entity but never enter the review workflow; all authenticated
// users see the active set.
type ResolutionService struct {
	db   *gorm.DB
	hook *audit.Hook
}

// NewResolutionService constructs a ResolutionService.
func NewResolutionService(db *gorm.DB, hook *audit.Hook) (*ResolutionService, error) {
	if db == nil {
		return nil, errors.New("resolution service: db is required")
	}
	return &ResolutionService{db: db, hook: hook}, nil
}

// List returns non-archived resolutions, newest effectivity first.
func (s *ResolutionService) List(ctx context.Context) ([]models.Resolution, error) {
	ctx = ensureContext(ctx)

	var resolutions []models.Resolution
	err := s.db.WithContext(ctx).
		Where("is_archived = ?", false).
		Preload("Owner").
		Order("effectivity DESC").
		Find(&resolutions).Error
	if err != nil {
		return nil, fmt.Errorf("resolution service: list resolutions: %w", err)
	}
	return resolutions, nil
}

// Get fetches one non-archived resolution.
func (s *ResolutionService) Get(ctx context.Context, id string) (*models.Resolution, error) {
	ctx = ensureContext(ctx)

	var resolution models.Resolution
	err := s.db.WithContext(ctx).Preload("Owner").First(&resolution, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResolutionNotFound
		}
		return nil, fmt.Errorf("resolution service: get resolution: %w", err)
	}
	if resolution.IsArchived {
		return nil, ErrResolutionNotFound
	}
	return &resolution, nil
}

// Create registers a new resolution owned by the acting user.
func (s *ResolutionService) Create(ctx context.Context, input ResolutionInput) (*models.Resolution, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	number := strings.TrimSpace(input.ResolutionNumber)
	if number == "" {
		return nil, apperrors.NewBadRequest("resolution number is required")
	}

	resolution := &models.Resolution{
		ResolutionNumber:   number,
		Effectivity:        input.Effectivity,
		Expiration:         input.Expiration,
		ContactPerson:      strings.TrimSpace(input.ContactPerson),
		ContactNumberEmail: strings.TrimSpace(input.ContactNumberEmail),
		PartnerAgency:      strings.TrimSpace(input.PartnerAgency),
		AttachmentLink:     strings.TrimSpace(input.AttachmentLink),
		OwnerID:            actor.UserID,
	}

	if err := s.db.WithContext(ctx).Create(resolution).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("resolution service: create resolution: %w", err)
	}

	s.hook.Created(ctx, resolution)
	return resolution, nil
}

// Update modifies a resolution. Owners and admins only.
func (s *ResolutionService) Update(ctx context.Context, id string, input ResolutionInput) (*models.Resolution, error) {
	ctx = ensureContext(ctx)

	resolution, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := resolution.AuditAttributes()

	if number := strings.TrimSpace(input.ResolutionNumber); number != "" {
		resolution.ResolutionNumber = number
	}
	if !input.Effectivity.IsZero() {
		resolution.Effectivity = input.Effectivity
	}
	if !input.Expiration.IsZero() {
		resolution.Expiration = input.Expiration
	}
	resolution.ContactPerson = strings.TrimSpace(input.ContactPerson)
	resolution.ContactNumberEmail = strings.TrimSpace(input.ContactNumberEmail)
	resolution.PartnerAgency = strings.TrimSpace(input.PartnerAgency)
	resolution.AttachmentLink = strings.TrimSpace(input.AttachmentLink)

	if err := s.db.WithContext(ctx).Save(resolution).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("resolution service: update resolution: %w", err)
	}

	s.hook.Updated(ctx, resolution, previous)
	return resolution, nil
}

// Archive soft-removes a resolution after password confirmation.
func (s *ResolutionService) Archive(ctx context.Context, id, password string) error {
	ctx = ensureContext(ctx)

	resolution, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	actor, _ := auditctx.FromContext(ctx)
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", actor.UserID).Error; err != nil {
		return apperrors.ErrUnauthorized
	}
	if !crypto.VerifyPassword(user.Password, strings.TrimSpace(password)) {
		return apperrors.ErrPasswordMismatch
	}

	previous := resolution.AuditAttributes()
	resolution.IsArchived = true

	if err := s.db.WithContext(ctx).Save(resolution).Error; err != nil {
		return fmt.Errorf("resolution service: archive resolution: %w", err)
	}

	s.hook.Updated(ctx, resolution, previous)
	return nil
}

func (s *ResolutionService) authorize(ctx context.Context, id string) (*models.Resolution, error) {
	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	resolution, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && resolution.OwnerID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return resolution, nil
}
