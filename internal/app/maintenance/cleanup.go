package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/pkg/logger"
)

const defaultAuditSpec = "@daily"

// Cleaner runs background retention enforcement for the audit trail. Purging
// through the cleaner is the only sanctioned way audit entries are ever
// removed; everything else treats the trail as append-only.
type Cleaner struct {
	store     *audit.Store
	cron      *cron.Cron
	now       func() time.Time
	log       *zap.Logger
	retention int

	auditSchedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for scheduling comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithAuditRetentionDays adjusts how long audit entries are retained.
// Zero or negative disables retention enforcement entirely.
func WithAuditRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		cleaner.retention = days
	}
}

// WithAuditSchedule overrides the cron specification for retention enforcement.
func WithAuditSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.auditSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner. A nil store or non-positive retention
// results in the cleanup job being skipped.
func NewCleaner(store *audit.Store, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		store:         store,
		now:           time.Now,
		retention:     0,
		auditSchedule: defaultAuditSpec,
		log:           logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

func (c *Cleaner) enabled() bool {
	return c.store != nil && c.retention > 0
}

// Start registers the retention job with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if !c.enabled() {
		return nil
	}

	if _, err := c.cron.AddFunc(c.auditSchedule, func() {
		ctx := context.Background()
		if removed, err := c.store.PurgeOlderThan(ctx, c.retention); err != nil {
			c.log.Warn("audit retention cleanup failed", zap.Error(err))
		} else if removed > 0 {
			c.log.Info("audit retention enforced",
				zap.Int64("removed", removed),
				zap.Int("retention_days", c.retention))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured cleanup routines sequentially. Primarily used
// in tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.enabled() {
		if _, err := c.store.PurgeOlderThan(ctx, c.retention); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
