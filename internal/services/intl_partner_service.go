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

// ErrIntlPartnerNotFound indicates the requested partner record does not exist.
var ErrIntlPartnerNotFound = apperrors.New("INTL_PARTNER_NOT_FOUND", "International partner not found", http.StatusNotFound)

// IntlPartnerInput describes an international partner create or update payload.
type IntlPartnerInput struct {
	AgencyPartner     string
	Location          string
	ActivityConducted string
	StartDate         time.Time
	EndDate           time.Time
	NumParticipants   int
	NumCommittee      int
	Narrative         string
	AttachmentLink    string
	CollegeID         string
}

// IntlPartnerService manages international partner activity records. Partners
// are audited like every tracked entity but never enter the review workflow;
// all authenticated users see the active set.
type IntlPartnerService struct {
	db   *gorm.DB
	hook *audit.Hook
}

// NewIntlPartnerService constructs an IntlPartnerService.
func NewIntlPartnerService(db *gorm.DB, hook *audit.Hook) (*IntlPartnerService, error) {
	if db == nil {
		return nil, errors.New("intl partner service: db is required")
	}
	return &IntlPartnerService{db: db, hook: hook}, nil
}

// List returns non-archived partner records, newest first.
func (s *IntlPartnerService) List(ctx context.Context) ([]models.IntlPartner, error) {
	ctx = ensureContext(ctx)

	var partners []models.IntlPartner
	err := s.db.WithContext(ctx).
		Where("is_archived = ?", false).
		Preload("Owner").
		Preload("College").
		Order("created_at DESC").
		Find(&partners).Error
	if err != nil {
		return nil, fmt.Errorf("intl partner service: list partners: %w", err)
	}
	return partners, nil
}

// Get fetches one non-archived partner record.
func (s *IntlPartnerService) Get(ctx context.Context, id string) (*models.IntlPartner, error) {
	ctx = ensureContext(ctx)

	var partner models.IntlPartner
	err := s.db.WithContext(ctx).Preload("Owner").Preload("College").First(&partner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntlPartnerNotFound
		}
		return nil, fmt.Errorf("intl partner service: get partner: %w", err)
	}
	if partner.IsArchived {
		return nil, ErrIntlPartnerNotFound
	}
	return &partner, nil
}

// Create registers a new partner record owned by the acting user.
func (s *IntlPartnerService) Create(ctx context.Context, input IntlPartnerInput) (*models.IntlPartner, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	agency := strings.TrimSpace(input.AgencyPartner)
	if agency == "" {
		return nil, apperrors.NewBadRequest("agency partner is required")
	}
	if err := validateActivityDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	partner := &models.IntlPartner{
		AgencyPartner:     agency,
		Location:          strings.TrimSpace(input.Location),
		ActivityConducted: strings.TrimSpace(input.ActivityConducted),
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		NumParticipants:   input.NumParticipants,
		NumCommittee:      input.NumCommittee,
		Narrative:         strings.TrimSpace(input.Narrative),
		AttachmentLink:    strings.TrimSpace(input.AttachmentLink),
		CollegeID:         input.CollegeID,
		OwnerID:           actor.UserID,
	}

	if err := s.db.WithContext(ctx).Create(partner).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("intl partner service: create partner: %w", err)
	}

	s.hook.Created(ctx, partner)
	return partner, nil
}

// Update modifies a partner record. Owners and admins only.
func (s *IntlPartnerService) Update(ctx context.Context, id string, input IntlPartnerInput) (*models.IntlPartner, error) {
	ctx = ensureContext(ctx)

	partner, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateActivityDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	previous := partner.AuditAttributes()

	if agency := strings.TrimSpace(input.AgencyPartner); agency != "" {
		partner.AgencyPartner = agency
	}
	partner.Location = strings.TrimSpace(input.Location)
	partner.ActivityConducted = strings.TrimSpace(input.ActivityConducted)
	if !input.StartDate.IsZero() {
		partner.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		partner.EndDate = input.EndDate
	}
	partner.NumParticipants = input.NumParticipants
	partner.NumCommittee = input.NumCommittee
	partner.Narrative = strings.TrimSpace(input.Narrative)
	partner.AttachmentLink = strings.TrimSpace(input.AttachmentLink)
	if input.CollegeID != "" {
		partner.CollegeID = input.CollegeID
	}

	if err := s.db.WithContext(ctx).Save(partner).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("intl partner service: update partner: %w", err)
	}

	s.hook.Updated(ctx, partner, previous)
	return partner, nil
}

// Archive soft-removes a partner record after password confirmation.
func (s *IntlPartnerService) Archive(ctx context.Context, id, password string) error {
	ctx = ensureContext(ctx)

	partner, err := s.authorize(ctx, id)
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

	previous := partner.AuditAttributes()
	partner.IsArchived = true

	if err := s.db.WithContext(ctx).Save(partner).Error; err != nil {
		return fmt.Errorf("intl partner service: archive partner: %w", err)
	}

	s.hook.Updated(ctx, partner, previous)
	return nil
}

func (s *IntlPartnerService) authorize(ctx context.Context, id string) (*models.IntlPartner, error) {
	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	partner, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && partner.OwnerID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return partner, nil
}

func validateActivityDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return apperrors.NewValidation("end date must not precede start date")
	}
	return nil
}
