package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/internal/review"
	"github.com/dvcruz/progtrack/pkg/crypto"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
)

// SubmissionPtr constrains PT to a pointer to a submission entity, giving the
// generic service access to the review column group and audit metadata.
type SubmissionPtr[T any] interface {
	*T
	models.Reviewable
}

// ListSubmissionsOptions controls pagination for submission listings.
type ListSubmissionsOptions struct {
	Page     int
	PageSize int
}

// SubmissionService implements the shared lifecycle of every review-eligible
// entity kind: visibility-scoped listing, owner-attributed creation, audited
// mutation, the resubmission reset, and password-confirmed archiving.
type SubmissionService[T any, PT SubmissionPtr[T]] struct {
	db     *gorm.DB
	hook   *audit.Hook
	kind   models.EntityKind
	policy review.Policy
}

// NewSubmissionService constructs the service for one entity kind. The kind is
// derived from the entity type itself.
func NewSubmissionService[T any, PT SubmissionPtr[T]](db *gorm.DB, hook *audit.Hook, policy review.Policy) (*SubmissionService[T, PT], error) {
	if db == nil {
		return nil, errors.New("submission service: db is required")
	}

	kind := PT(new(T)).AuditKind()
	if !kind.Reviewable() {
		return nil, fmt.Errorf("submission service: kind %q is not review-eligible", kind)
	}

	return &SubmissionService[T, PT]{
		db:     db,
		hook:   hook,
		kind:   kind,
		policy: policy,
	}, nil
}

// Kind returns the entity kind the service manages.
func (s *SubmissionService[T, PT]) Kind() models.EntityKind {
	return s.kind
}

// List returns the page of submissions the acting user may see on the given
// surface, newest first, with the total row count for pagination.
func (s *SubmissionService[T, PT]) List(ctx context.Context, view review.ViewKind, opts ListSubmissionsOptions) ([]T, int64, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, 0, apperrors.ErrUnauthorized
	}

	page, pageSize := normalizePagination(opts.Page, opts.PageSize)

	query := s.policy.Scope(s.db.WithContext(ctx).Model(PT(new(T))), actor, view)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("submission service: count %s: %w", s.kind.Slug(), err)
	}

	var items []T
	err := query.
		Preload("Owner").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("submission service: list %s: %w", s.kind.Slug(), err)
	}

	return items, total, nil
}

// Get fetches one submission the acting user is allowed to see. Records the
// actor may not view are reported as not found.
func (s *SubmissionService[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	entity, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanSee(actor, entity) {
		return nil, apperrors.ErrNotFound
	}

	return entity, nil
}

// Create persists a new submission owned by the acting user. The review state
// always starts at pending regardless of what the caller supplied.
func (s *SubmissionService[T, PT]) Create(ctx context.Context, entity PT) error {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}

	sub := entity.Review()
	sub.OwnerID = actor.UserID
	sub.Status = models.StatusPending
	sub.Remarks = nil
	sub.IsArchived = false

	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("submission service: create %s: %w", s.kind.Slug(), err)
	}

	s.hook.Created(ctx, entity)
	return nil
}

// Update applies the mutation to a submission the actor owns (or any
// submission for admins). When an owner edits a rejected submission the
// record reverts to pending and reviewer remarks are cleared, within the same
// save, so the audit trail captures the edit and the reset as one change.
func (s *SubmissionService[T, PT]) Update(ctx context.Context, id string, mutate func(PT) error) (PT, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	entity, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanSee(actor, entity) {
		return nil, apperrors.ErrNotFound
	}

	previous := entity.AuditAttributes()
	guarded := *entity.Review()
	originalID := entity.AuditID()

	if mutate != nil {
		if err := mutate(entity); err != nil {
			return nil, err
		}
	}

	if entity.AuditID() != originalID {
		return nil, apperrors.NewBadRequest("id cannot be changed")
	}

	// Updates edit content, never review state. The review column group is
	// only mutated through the state machine's transition path.
	*entity.Review() = guarded

	review.ResetOnOwnerEdit(actor, entity)

	if err := s.db.WithContext(ctx).Save(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("submission service: update %s: %w", s.kind.Slug(), err)
	}

	s.hook.Updated(ctx, entity, previous)
	return entity, nil
}

// Archive soft-removes a submission after re-verifying the acting user's
// password. Archived records disappear from every listing surface but their
// audit history remains.
func (s *SubmissionService[T, PT]) Archive(ctx context.Context, id, password string) error {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}

	entity, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if !s.policy.CanSee(actor, entity) {
		return apperrors.ErrNotFound
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", actor.UserID).Error; err != nil {
		return apperrors.ErrUnauthorized
	}
	if !crypto.VerifyPassword(user.Password, strings.TrimSpace(password)) {
		return apperrors.ErrPasswordMismatch
	}

	previous := entity.AuditAttributes()
	entity.Review().IsArchived = true

	if err := s.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("submission service: archive %s: %w", s.kind.Slug(), err)
	}

	s.hook.Updated(ctx, entity, previous)
	return nil
}

// Delete permanently removes a submission. Reserved for admins; the audit
// trail keeps the terminal snapshot.
func (s *SubmissionService[T, PT]) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	entity, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return fmt.Errorf("submission service: delete %s: %w", s.kind.Slug(), err)
	}

	s.hook.Deleted(ctx, entity)
	return nil
}

// CountByStatus tallies non-archived submissions per review status, scoped to
// the owner unless the actor is an admin.
func (s *SubmissionService[T, PT]) CountByStatus(ctx context.Context) (map[models.ReviewStatus]int64, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	query := s.db.WithContext(ctx).Model(PT(new(T))).Where("is_archived = ?", false)
	if !actor.IsAdmin() {
		query = query.Where("owner_id = ?", actor.UserID)
	}

	type statusCount struct {
		Status models.ReviewStatus
		Count  int64
	}

	var rows []statusCount
	if err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("submission service: count %s by status: %w", s.kind.Slug(), err)
	}

	counts := make(map[models.ReviewStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (s *SubmissionService[T, PT]) fetch(ctx context.Context, id string) (PT, error) {
	entity := PT(new(T))
	err := s.db.WithContext(ctx).Preload("Owner").First(entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("submission service: fetch %s: %w", s.kind.Slug(), err)
	}
	return entity, nil
}
