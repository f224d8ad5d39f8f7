package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/internal/review"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
	"github.com/dvcruz/progtrack/pkg/metrics"
)

// PendingSubmissions aggregates every submission awaiting review, grouped by
// entity kind, for the reviewer queue.
type PendingSubmissions struct {
	Total             int64                     `json:"total"`
	TechTransfers     []models.TechTransfer     `json:"tech_transfers"`
	Awards            []models.Award            `json:"awards"`
	Engagements       []models.Engagement       `json:"engagements"`
	Modalities        []models.Modality         `json:"modalities"`
	ImpactAssessments []models.ImpactAssessment `json:"impact_assessments"`
}

// ReviewService executes review decisions across every submission kind and
// feeds the reviewer queue.
type ReviewService struct {
	db   *gorm.DB
	hook *audit.Hook
}

// NewReviewService constructs a ReviewService.
func NewReviewService(db *gorm.DB, hook *audit.Hook) (*ReviewService, error) {
	if db == nil {
		return nil, errors.New("review service: db is required")
	}
	return &ReviewService{db: db, hook: hook}, nil
}

// Transition applies an approve or reject decision to the identified
// submission and records the state change on the audit trail.
func (s *ReviewService) Transition(ctx context.Context, kind models.EntityKind, id string, decision review.Decision) (models.Reviewable, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	if !kind.Reviewable() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("%q is not a reviewable kind", kind.Slug()))
	}

	target, err := s.fetchReviewable(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	previous := target.AuditAttributes()

	if err := review.Apply(actor, target, decision); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(target).Error; err != nil {
		return nil, fmt.Errorf("review service: save %s: %w", kind.Slug(), err)
	}

	metrics.ReviewTransitions.WithLabelValues(string(kind), string(decision.Status)).Inc()
	s.hook.Updated(ctx, target, previous)

	return target, nil
}

// Pending gathers all pending, non-archived submissions across every kind.
// Reserved for admins.
func (s *ReviewService) Pending(ctx context.Context) (*PendingSubmissions, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	result := &PendingSubmissions{}

	collect := func(dest any) error {
		return s.db.WithContext(ctx).
			Where("status = ? AND is_archived = ?", models.StatusPending, false).
			Preload("Owner").
			Order("created_at ASC").
			Find(dest).Error
	}

	if err := collect(&result.TechTransfers); err != nil {
		return nil, fmt.Errorf("review service: pending tech transfers: %w", err)
	}
	if err := collect(&result.Awards); err != nil {
		return nil, fmt.Errorf("review service: pending awards: %w", err)
	}
	if err := collect(&result.Engagements); err != nil {
		return nil, fmt.Errorf("review service: pending engagements: %w", err)
	}
	if err := collect(&result.Modalities); err != nil {
		return nil, fmt.Errorf("review service: pending modalities: %w", err)
	}
	if err := collect(&result.ImpactAssessments); err != nil {
		return nil, fmt.Errorf("review service: pending impact assessments: %w", err)
	}

	result.Total = int64(len(result.TechTransfers) + len(result.Awards) +
		len(result.Engagements) + len(result.Modalities) + len(result.ImpactAssessments))

	return result, nil
}

// PendingCounts tallies pending submissions per kind without loading rows.
func (s *ReviewService) PendingCounts(ctx context.Context) (map[models.EntityKind]int64, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	counts := make(map[models.EntityKind]int64, len(models.SubmissionKinds))
	for _, kind := range models.SubmissionKinds {
		target, err := emptyReviewable(kind)
		if err != nil {
			return nil, err
		}

		var count int64
		err = s.db.WithContext(ctx).
			Model(target).
			Where("status = ? AND is_archived = ?", models.StatusPending, false).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("review service: count pending %s: %w", kind.Slug(), err)
		}
		counts[kind] = count
	}

	return counts, nil
}

func (s *ReviewService) fetchReviewable(ctx context.Context, kind models.EntityKind, id string) (models.Reviewable, error) {
	target, err := emptyReviewable(kind)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Preload("Owner").First(target, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("review service: fetch %s: %w", kind.Slug(), err)
	}

	return target, nil
}

func emptyReviewable(kind models.EntityKind) (models.Reviewable, error) {
	switch kind {
	case models.KindTechTransfer:
		return &models.TechTransfer{}, nil
	case models.KindAward:
		return &models.Award{}, nil
	case models.KindEngagement:
		return &models.Engagement{}, nil
	case models.KindModality:
		return &models.Modality{}, nil
	case models.KindImpactAssessment:
		return &models.ImpactAssessment{}, nil
	default:
		return nil, apperrors.NewBadRequest(fmt.Sprintf("%q is not a reviewable kind", kind.Slug()))
	}
}
