package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/models"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
)

// ErrCampusNotFound indicates the requested campus does not exist.
var ErrCampusNotFound = apperrors.New("CAMPUS_NOT_FOUND", "Campus not found", http.StatusNotFound)

// CampusInput describes a campus create or update payload.
type CampusInput struct {
	Name     string
	Location string
}

// CampusService manages the campus directory.
type CampusService struct {
	db   *gorm.DB
	hook *audit.Hook
}

// NewCampusService constructs a CampusService.
func NewCampusService(db *gorm.DB, hook *audit.Hook) (*CampusService, error) {
	if db == nil {
		return nil, errors.New("campus service: db is required")
	}
	return &CampusService{db: db, hook: hook}, nil
}

// List returns every campus with its colleges, alphabetically.
func (s *CampusService) List(ctx context.Context) ([]models.Campus, error) {
	ctx = ensureContext(ctx)

	var campuses []models.Campus
	err := s.db.WithContext(ctx).Preload("Colleges").Order("name ASC").Find(&campuses).Error
	if err != nil {
		return nil, fmt.Errorf("campus service: list campuses: %w", err)
	}
	return campuses, nil
}

// Get fetches one campus with its colleges.
func (s *CampusService) Get(ctx context.Context, id string) (*models.Campus, error) {
	ctx = ensureContext(ctx)

	var campus models.Campus
	err := s.db.WithContext(ctx).Preload("Colleges").First(&campus, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampusNotFound
		}
		return nil, fmt.Errorf("campus service: get campus: %w", err)
	}
	return &campus, nil
}

// Create registers a new campus.
func (s *CampusService) Create(ctx context.Context, input CampusInput) (*models.Campus, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("campus name is required")
	}

	campus := &models.Campus{Name: name, Location: strings.TrimSpace(input.Location)}
	if err := s.db.WithContext(ctx).Create(campus).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("campus service: create campus: %w", err)
	}

	s.hook.Created(ctx, campus)
	return campus, nil
}

// Update renames or relocates a campus.
func (s *CampusService) Update(ctx context.Context, id string, input CampusInput) (*models.Campus, error) {
	ctx = ensureContext(ctx)

	campus, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := campus.AuditAttributes()

	if name := strings.TrimSpace(input.Name); name != "" {
		campus.Name = name
	}
	campus.Location = strings.TrimSpace(input.Location)

	if err := s.db.WithContext(ctx).Save(campus).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("campus service: update campus: %w", err)
	}

	s.hook.Updated(ctx, campus, previous)
	return campus, nil
}

// Delete removes a campus that has no remaining colleges.
func (s *CampusService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	campus, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var colleges int64
	if err := s.db.WithContext(ctx).Model(&models.College{}).Where("campus_id = ?", id).Count(&colleges).Error; err != nil {
		return fmt.Errorf("campus service: count colleges: %w", err)
	}
	if colleges > 0 {
		return apperrors.NewBadRequest("campus still has colleges attached")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Campus{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("campus service: delete campus: %w", err)
	}

	s.hook.Deleted(ctx, campus)
	return nil
}
