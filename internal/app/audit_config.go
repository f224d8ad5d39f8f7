package app

import (
	"fmt"
	"strings"

	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/internal/review"
)

// Visibility policy names accepted in audit.visibility entries.
const (
	visibilityOwnAnyStatus = "own-any-status"
	visibilityApprovedOnly = "approved-only"
)

// VisibilityPolicies resolves the configured per-kind visibility rules.
// Keys are submission kind slugs (for example "tech-transfer"); unlisted
// kinds fall back to the default policy.
func (c AuditConfig) VisibilityPolicies() (map[models.EntityKind]review.Policy, error) {
	policies := make(map[models.EntityKind]review.Policy, len(c.Visibility))

	for slug, name := range c.Visibility {
		kind, err := models.ParseEntityKind(slug)
		if err != nil || !kind.Reviewable() {
			return nil, fmt.Errorf("audit.visibility: unknown submission kind %q", slug)
		}

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "", visibilityOwnAnyStatus:
			policies[kind] = review.Policy{OwnAnyStatus: true}
		case visibilityApprovedOnly:
			policies[kind] = review.Policy{OwnAnyStatus: false}
		default:
			return nil, fmt.Errorf("audit.visibility: unknown policy %q for %q", name, slug)
		}
	}

	return policies, nil
}

// CleanupScheduleSpec returns the cron expression for the audit retention
// cleaner, defaulting to a daily run.
func (c AuditConfig) CleanupScheduleSpec() string {
	spec := strings.TrimSpace(c.CleanupSchedule)
	if spec == "" {
		return "@daily"
	}
	return spec
}
