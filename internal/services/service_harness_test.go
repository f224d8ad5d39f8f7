package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/auditctx"
	testutil "github.com/dvcruz/progtrack/internal/database/testutil"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/pkg/crypto"
)

func newTestHarness(t *testing.T) (*gorm.DB, *audit.Hook, *audit.Store) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := audit.NewStore(db)
	require.NoError(t, err)
	hook := audit.NewHook(audit.NewRecorder(store))
	return db, hook, store
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hashed, err := crypto.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  hashed,
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func actorCtx(user *models.User) context.Context {
	return auditctx.WithActor(context.Background(), auditctx.Actor{
		UserID:    user.ID,
		Role:      user.Role,
		IPAddress: "127.0.0.1",
		UserAgent: "go-test",
	})
}

func createCampusAndCollege(t *testing.T, db *gorm.DB) (*models.Campus, *models.College) {
	t.Helper()

	campus := &models.Campus{Name: "North Campus", Location: "North"}
	require.NoError(t, db.Create(campus).Error)

	college := &models.College{Name: "College of Science", Code: "COS", CampusID: campus.ID}
	require.NoError(t, db.Create(college).Error)

	return campus, college
}

func newTechTransfer(collegeID string) *models.TechTransfer {
	return &models.TechTransfer{
		Name:        "Rice Drying Technology",
		Description: "Solar assisted rice drying",
		Category:    "agriculture",
		Purpose:     "Post-harvest loss reduction",
		StartDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		CollegeID:   collegeID,
	}
}

func entityTrail(t *testing.T, store *audit.Store, kind models.EntityKind, id string) []models.AuditEntry {
	t.Helper()

	entries, err := store.EntityHistory(context.Background(), kind, id)
	require.NoError(t, err)
	return entries
}
