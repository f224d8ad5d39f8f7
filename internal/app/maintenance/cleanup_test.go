package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	testutil "github.com/dvcruz/progtrack/internal/database/testutil"
	"github.com/dvcruz/progtrack/internal/models"
)

func seedEntry(t *testing.T, db *gorm.DB, occurredAt time.Time) models.AuditEntry {
	t.Helper()

	entry := models.AuditEntry{
		Action:     audit.ActionUpdated,
		EntityKind: models.KindTechTransfer,
		EntityID:   "entity-1",
		OccurredAt: occurredAt,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func TestCleanerRunOncePurgesExpiredEntries(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	now := time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC)

	store, err := audit.NewStore(db)
	require.NoError(t, err)
	store = store.WithClock(func() time.Time { return now })

	seedEntry(t, db, now.AddDate(0, 0, -120))
	kept := seedEntry(t, db, now.AddDate(0, 0, -10))

	cleaner := NewCleaner(store,
		WithAuditRetentionDays(90),
		WithNow(func() time.Time { return now }),
	)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var remaining []models.AuditEntry
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, kept.ID, remaining[0].ID)
}

func TestCleanerDisabledWithoutRetention(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	store, err := audit.NewStore(db)
	require.NoError(t, err)

	seedEntry(t, db, time.Now().AddDate(-1, 0, 0))

	cleaner := NewCleaner(store)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.AuditEntry{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCleanerStartRegistersJob(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	store, err := audit.NewStore(db)
	require.NoError(t, err)

	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	cleaner := NewCleaner(store,
		WithCron(scheduler),
		WithAuditRetentionDays(30),
		WithAuditSchedule("@every 1h"),
	)

	require.NoError(t, cleaner.Start())
	require.Len(t, scheduler.Entries(), 1)
	<-cleaner.Stop().Done()
}

func TestCleanerStartNoopWhenDisabled(t *testing.T) {
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	cleaner := NewCleaner(nil, WithCron(scheduler))

	require.NoError(t, cleaner.Start())
	require.Empty(t, scheduler.Entries())
}
