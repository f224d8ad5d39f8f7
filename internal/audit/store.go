package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/models"
)

// Filters encapsulates optional filters when querying the audit trail.
type Filters struct {
	ActorID    string
	Action     string
	EntityKind models.EntityKind
	EntityID   string
	// Search matches the derived description (action + entity kind).
	Search string
	Since  *time.Time
	Until  *time.Time
}

// ListOptions controls pagination, filtering, and ordering for audit queries.
type ListOptions struct {
	Page     int
	PageSize int
	Filters  Filters
	SortBy   string
	SortDesc bool
}

// sortable whitelists the columns exposed for ordering.
var sortable = map[string]string{
	"occurred_at": "occurred_at",
	"action":      "action",
	"entity_kind": "entity_kind",
}

// ActionCount pairs an action verb with its frequency.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// KindCount pairs an entity kind with its frequency.
type KindCount struct {
	EntityKind models.EntityKind `json:"entity_kind"`
	Count      int64             `json:"count"`
}

// ActorCount pairs an actor with its frequency.
type ActorCount struct {
	ActorID string `json:"actor_id"`
	Count   int64  `json:"count"`
}

// Statistics aggregates activity over the whole trail.
type Statistics struct {
	Total     int64               `json:"total"`
	Today     int64               `json:"today"`
	ThisWeek  int64               `json:"this_week"`
	ThisMonth int64               `json:"this_month"`
	TopSize   int                 `json:"-"`
	Actions   []ActionCount       `json:"top_actions"`
	Kinds     []KindCount         `json:"top_entity_kinds"`
	Actors    []ActorCount        `json:"top_actors"`
	Recent    []models.AuditEntry `json:"recent_entries"`
}

// Store is the append-only collection of audit entries. It never updates or
// deletes rows on behalf of the application; retention enforcement is an
// operational task owned by the maintenance cleaner.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore constructs a Store using the provided database handle.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("audit store: db is required")
	}
	return &Store{db: db, now: time.Now}, nil
}

// WithClock overrides the clock, primarily for statistics tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// Append inserts one audit entry. Existing rows are never touched.
func (s *Store) Append(ctx context.Context, entry *models.AuditEntry) error {
	ctx = ensureContext(ctx)

	if entry == nil {
		return errors.New("audit store: entry is required")
	}
	if strings.TrimSpace(entry.Action) == "" {
		return errors.New("audit store: action is required")
	}
	if !entry.EntityKind.Valid() {
		return fmt.Errorf("audit store: unknown entity kind %q", entry.EntityKind)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("audit store: append entry: %w", err)
	}
	return nil
}

// List returns paginated audit entries with a total count, ordered by
// occurred_at descending unless the caller requests otherwise.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]models.AuditEntry, int64, error) {
	ctx = ensureContext(ctx)

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PageSize
	if perPage <= 0 || perPage > 200 {
		perPage = 15
	}

	var (
		results []models.AuditEntry
		total   int64
	)

	query := s.db.WithContext(ctx).Model(&models.AuditEntry{})
	query = applyFilters(query, opts.Filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("audit store: count entries: %w", err)
	}

	column, ok := sortable[opts.SortBy]
	if !ok {
		column = "occurred_at"
	}
	direction := "DESC"
	if opts.SortBy != "" && !opts.SortDesc {
		direction = "ASC"
	}

	if err := query.
		Preload("Actor").
		Order(column + " " + direction).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("audit store: list entries: %w", err)
	}

	return results, total, nil
}

// Export returns every entry matching the filters without pagination, newest
// first, for offline reporting.
func (s *Store) Export(ctx context.Context, filters Filters) ([]models.AuditEntry, error) {
	ctx = ensureContext(ctx)

	var entries []models.AuditEntry
	query := applyFilters(s.db.WithContext(ctx).Model(&models.AuditEntry{}), filters)
	if err := query.
		Preload("Actor").
		Order("occurred_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("audit store: export entries: %w", err)
	}

	return entries, nil
}

// EntityHistory returns the complete trail for one entity, oldest first, so a
// creation → updates → deletion sequence reads in commit order.
func (s *Store) EntityHistory(ctx context.Context, kind models.EntityKind, entityID string) ([]models.AuditEntry, error) {
	ctx = ensureContext(ctx)

	if !kind.Valid() {
		return nil, fmt.Errorf("audit store: unknown entity kind %q", kind)
	}

	var entries []models.AuditEntry
	if err := s.db.WithContext(ctx).
		Preload("Actor").
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Order("occurred_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("audit store: entity history: %w", err)
	}

	return entries, nil
}

// Aggregate computes total counts and top-N rankings over the audit trail.
func (s *Store) Aggregate(ctx context.Context, topN int) (*Statistics, error) {
	ctx = ensureContext(ctx)

	if topN <= 0 {
		topN = 5
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // weeks start on Monday
	}
	startOfWeek := startOfDay.AddDate(0, 0, -(weekday - 1))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &Statistics{TopSize: topN}
	model := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.AuditEntry{})
	}

	if err := model().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("audit store: total count: %w", err)
	}
	if err := model().Where("occurred_at >= ?", startOfDay).Count(&stats.Today).Error; err != nil {
		return nil, fmt.Errorf("audit store: today count: %w", err)
	}
	if err := model().Where("occurred_at >= ?", startOfWeek).Count(&stats.ThisWeek).Error; err != nil {
		return nil, fmt.Errorf("audit store: week count: %w", err)
	}
	if err := model().Where("occurred_at >= ?", startOfMonth).Count(&stats.ThisMonth).Error; err != nil {
		return nil, fmt.Errorf("audit store: month count: %w", err)
	}

	if err := model().
		Select("action, COUNT(*) as count").
		Group("action").
		Order("count DESC").
		Limit(topN).
		Scan(&stats.Actions).Error; err != nil {
		return nil, fmt.Errorf("audit store: top actions: %w", err)
	}

	if err := model().
		Select("entity_kind, COUNT(*) as count").
		Group("entity_kind").
		Order("count DESC").
		Limit(topN).
		Scan(&stats.Kinds).Error; err != nil {
		return nil, fmt.Errorf("audit store: top kinds: %w", err)
	}

	if err := model().
		Select("actor_id, COUNT(*) as count").
		Where("actor_id IS NOT NULL").
		Group("actor_id").
		Order("count DESC").
		Limit(topN).
		Scan(&stats.Actors).Error; err != nil {
		return nil, fmt.Errorf("audit store: top actors: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Preload("Actor").
		Order("occurred_at DESC").
		Limit(topN).
		Find(&stats.Recent).Error; err != nil {
		return nil, fmt.Errorf("audit store: recent entries: %w", err)
	}

	return stats, nil
}

// PurgeOlderThan removes audit entries past the retention window (in days).
// This is the single sanctioned delete path, reserved for the cleaner.
func (s *Store) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	ctx = ensureContext(ctx)

	if retentionDays <= 0 {
		return 0, errors.New("audit store: retentionDays must be positive")
	}

	cutoff := s.now().AddDate(0, 0, -retentionDays)

	result := s.db.WithContext(ctx).Where("occurred_at < ?", cutoff).Delete(&models.AuditEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("audit store: purge entries: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func applyFilters(query *gorm.DB, filters Filters) *gorm.DB {
	if filters.ActorID != "" {
		query = query.Where("actor_id = ?", filters.ActorID)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if filters.EntityKind != "" {
		query = query.Where("entity_kind = ?", filters.EntityKind)
	}
	if filters.EntityID != "" {
		query = query.Where("entity_id = ?", filters.EntityID)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		// Matches against the derived "<action> <kind>" description, so a
		// phrase like "created engagement" finds the entry too.
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(action || ' ' || entity_kind) LIKE ?", pattern)
	}
	if filters.Since != nil {
		query = query.Where("occurred_at >= ?", *filters.Since)
	}
	if filters.Until != nil {
		query = query.Where("occurred_at <= ?", *filters.Until)
	}
	return query
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
