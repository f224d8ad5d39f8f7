package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
)

// KindBreakdown tallies one submission kind by review status.
type KindBreakdown struct {
	Kind     string `json:"kind"`
	Total    int64  `json:"total"`
	Pending  int64  `json:"pending"`
	Approved int64  `json:"approved"`
	Rejected int64  `json:"rejected"`
}

// AdminOverview is the administrator dashboard payload.
type AdminOverview struct {
	Users       int64             `json:"users"`
	Campuses    int64             `json:"campuses"`
	Colleges    int64             `json:"colleges"`
	Resolutions int64             `json:"resolutions"`
	Submissions []KindBreakdown   `json:"submissions"`
	Audit       *audit.Statistics `json:"audit"`
}

// UserOverview is the per-user dashboard payload.
type UserOverview struct {
	Submissions    []KindBreakdown     `json:"submissions"`
	RecentActivity []models.AuditEntry `json:"recent_activity"`
}

// DashboardService assembles the dashboard aggregates for both roles.
type DashboardService struct {
	db    *gorm.DB
	store *audit.Store
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(db *gorm.DB, store *audit.Store) (*DashboardService, error) {
	if db == nil {
		return nil, errors.New("dashboard service: db is required")
	}
	if store == nil {
		return nil, errors.New("dashboard service: audit store is required")
	}
	return &DashboardService{db: db, store: store}, nil
}

// AdminOverview aggregates platform-wide counts plus audit statistics.
// Reserved for admins.
func (s *DashboardService) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	overview := &AdminOverview{}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.User{}, &overview.Users},
		{&models.Campus{}, &overview.Campuses},
		{&models.College{}, &overview.Colleges},
		{&models.Resolution{}, &overview.Resolutions},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("dashboard service: count: %w", err)
		}
	}

	breakdowns, err := s.submissionBreakdowns(ctx, "")
	if err != nil {
		return nil, err
	}
	overview.Submissions = breakdowns

	stats, err := s.store.Aggregate(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: audit statistics: %w", err)
	}
	overview.Audit = stats

	return overview, nil
}

// UserOverview aggregates the acting user's own submissions and the most
// recent audit activity they produced.
func (s *DashboardService) UserOverview(ctx context.Context) (*UserOverview, error) {
	ctx = ensureContext(ctx)

	actor, ok := auditctx.FromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	breakdowns, err := s.submissionBreakdowns(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.store.List(ctx, audit.ListOptions{
		PageSize: 10,
		Filters:  audit.Filters{ActorID: actor.UserID},
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard service: recent activity: %w", err)
	}

	return &UserOverview{Submissions: breakdowns, RecentActivity: recent}, nil
}

// submissionBreakdowns computes status tallies per submission kind, optionally
// restricted to one owner. Archived rows are ignored.
func (s *DashboardService) submissionBreakdowns(ctx context.Context, ownerID string) ([]KindBreakdown, error) {
	breakdowns := make([]KindBreakdown, 0, len(models.SubmissionKinds))

	for _, kind := range models.SubmissionKinds {
		target, err := emptyReviewable(kind)
		if err != nil {
			return nil, err
		}

		query := s.db.WithContext(ctx).Model(target).Where("is_archived = ?", false)
		if ownerID != "" {
			query = query.Where("owner_id = ?", ownerID)
		}

		type statusCount struct {
			Status models.ReviewStatus
			Count  int64
		}
		var rows []statusCount
		if err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("dashboard service: breakdown %s: %w", kind.Slug(), err)
		}

		breakdown := KindBreakdown{Kind: kind.Slug()}
		for _, row := range rows {
			breakdown.Total += row.Count
			switch row.Status {
			case models.StatusPending:
				breakdown.Pending = row.Count
			case models.StatusApproved:
				breakdown.Approved = row.Count
			case models.StatusRejected:
				breakdown.Rejected = row.Count
			}
		}
		breakdowns = append(breakdowns, breakdown)
	}

	return breakdowns, nil
}
