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

// ErrCollegeNotFound indicates the requested college does not exist.
var ErrCollegeNotFound = apperrors.New("COLLEGE_NOT_FOUND", "College not found", http.StatusNotFound)

// CollegeInput describes a college create or update payload.
type CollegeInput struct {
	Name     string
	Code     string
	CampusID string
}

// CollegeService manages the college directory.
type CollegeService struct {
	db   *gorm.DB
	hook *audit.Hook
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(db *gorm.DB, hook *audit.Hook) (*CollegeService, error) {
	if db == nil {
		return nil, errors.New("college service: db is required")
	}
	return &CollegeService{db: db, hook: hook}, nil
}

// List returns colleges, optionally narrowed to a campus, alphabetically.
func (s *CollegeService) List(ctx context.Context, campusID string) ([]models.College, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Preload("Campus").Order("name ASC")
	if campusID = strings.TrimSpace(campusID); campusID != "" {
		query = query.Where("campus_id = ?", campusID)
	}

	var colleges []models.College
	if err := query.Find(&colleges).Error; err != nil {
		return nil, fmt.Errorf("college service: list colleges: %w", err)
	}
	return colleges, nil
}

// Get fetches one college.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	ctx = ensureContext(ctx)

	var college models.College
	err := s.db.WithContext(ctx).Preload("Campus").First(&college, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("college service: get college: %w", err)
	}
	return &college, nil
}

// Create registers a new college under an existing campus.
func (s *CollegeService) Create(ctx context.Context, input CollegeInput) (*models.College, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	campusID := strings.TrimSpace(input.CampusID)
	if name == "" || code == "" {
		return nil, apperrors.NewBadRequest("college name and code are required")
	}

	var campusCount int64
	if err := s.db.WithContext(ctx).Model(&models.Campus{}).Where("id = ?", campusID).Count(&campusCount).Error; err != nil {
		return nil, fmt.Errorf("college service: verify campus: %w", err)
	}
	if campusCount == 0 {
		return nil, ErrCampusNotFound
	}

	college := &models.College{Name: name, Code: code, CampusID: campusID}
	if err := s.db.WithContext(ctx).Create(college).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("college service: create college: %w", err)
	}

	s.hook.Created(ctx, college)
	return college, nil
}

// Update modifies an existing college.
func (s *CollegeService) Update(ctx context.Context, id string, input CollegeInput) (*models.College, error) {
	ctx = ensureContext(ctx)

	college, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := college.AuditAttributes()

	if name := strings.TrimSpace(input.Name); name != "" {
		college.Name = name
	}
	if code := strings.ToUpper(strings.TrimSpace(input.Code)); code != "" {
		college.Code = code
	}
	if campusID := strings.TrimSpace(input.CampusID); campusID != "" {
		college.CampusID = campusID
	}

	if err := s.db.WithContext(ctx).Save(college).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("college service: update college: %w", err)
	}

	s.hook.Updated(ctx, college, previous)
	return college, nil
}

// Delete removes a college with no assigned users.
func (s *CollegeService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	college, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var users int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("college_id = ?", id).Count(&users).Error; err != nil {
		return fmt.Errorf("college service: count users: %w", err)
	}
	if users > 0 {
		return apperrors.NewBadRequest("college still has users assigned")
	}

	if err := s.db.WithContext(ctx).Delete(&models.College{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("college service: delete college: %w", err)
	}

	s.hook.Deleted(ctx, college)
	return nil
}
