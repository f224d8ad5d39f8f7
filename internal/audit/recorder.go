package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/pkg/logger"
	"github.com/dvcruz/progtrack/pkg/metrics"
)

// Actions recorded through the generic lifecycle hook.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Domain event verbs recorded outside the generic hook.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionUpdatePassword = "update_password"
	ActionUpdateProfile  = "update_profile"
)

// Recorder builds immutable audit entries from detected changes and persists
// them. Persistence failures are logged and swallowed: losing an audit record
// is preferable to blocking the user-facing write that triggered it.
type Recorder struct {
	store *Store
	log   *zap.Logger
}

// NewRecorder constructs a Recorder backed by the supplied store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{
		store: store,
		log:   logger.WithModule("audit"),
	}
}

// Record persists one audit entry for the supplied change. It never returns an
// error and never panics; the caller's business transaction must not observe
// audit failures.
func (r *Recorder) Record(ctx context.Context, action string, kind models.EntityKind, entityID string, change Change) {
	if r == nil || r.store == nil {
		return
	}

	entry := &models.AuditEntry{
		Action:     action,
		EntityKind: kind,
		EntityID:   entityID,
	}

	if actor, ok := auditctx.FromContext(ctx); ok {
		if actor.UserID != "" {
			id := actor.UserID
			entry.ActorID = &id
		}
		entry.IPAddress = actor.IPAddress
		entry.UserAgent = actor.UserAgent
	}

	var err error
	if entry.Before, err = marshalValues(change.Before); err != nil {
		r.dropEntry(entry, err)
		return
	}
	if entry.After, err = marshalValues(change.After); err != nil {
		r.dropEntry(entry, err)
		return
	}

	// The triggering write has already committed; a cancelled request must
	// not abandon the audit attempt at this point.
	if err := r.store.Append(context.WithoutCancel(ensureContext(ctx)), entry); err != nil {
		r.dropEntry(entry, err)
		return
	}

	metrics.AuditEntriesRecorded.WithLabelValues(string(kind), action).Inc()
}

// RecordEvent persists a domain event (login, password change, ...) with
// hand-picked before/after payloads instead of a computed diff.
func (r *Recorder) RecordEvent(ctx context.Context, action string, kind models.EntityKind, entityID string, before, after map[string]any) {
	r.Record(ctx, action, kind, entityID, Change{Before: before, After: after})
}

func (r *Recorder) dropEntry(entry *models.AuditEntry, err error) {
	metrics.AuditWriteFailures.Inc()
	r.log.Error("failed to record audit entry",
		zap.String("action", entry.Action),
		zap.String("entity_kind", string(entry.EntityKind)),
		zap.String("entity_id", entry.EntityID),
		zap.Error(err),
	)
}

func marshalValues(values map[string]any) (datatypes.JSON, error) {
	if len(values) == 0 {
		return datatypes.JSON("{}"), nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}
