package audit

import (
	"context"

	"github.com/dvcruz/progtrack/internal/models"
)

// Hook is the integration point every tracked entity type attaches to.
// Services invoke it synchronously immediately after the underlying write
// succeeds, before the caller's response is produced; its failure never
// affects that response.
type Hook struct {
	recorder *Recorder
}

// NewHook wires the lifecycle hook to a recorder.
func NewHook(recorder *Recorder) *Hook {
	return &Hook{recorder: recorder}
}

// Recorder exposes the underlying recorder for domain events that bypass the
// generic create/update/delete path.
func (h *Hook) Recorder() *Recorder {
	if h == nil {
		return nil
	}
	return h.recorder
}

// Created records a creation: every non-excluded field is reported as new.
func (h *Hook) Created(ctx context.Context, entity models.Auditable) {
	if h == nil || h.recorder == nil || entity == nil {
		return
	}
	change := Diff(nil, entity.AuditAttributes(), entity.AuditExclusions())
	h.recorder.Record(ctx, ActionCreated, entity.AuditKind(), entity.AuditID(), change)
}

// Updated records an update given the attribute snapshot taken before the
// write was applied. Updates that only touched excluded fields produce no
// audit entry.
func (h *Hook) Updated(ctx context.Context, entity models.Auditable, previous map[string]any) {
	if h == nil || h.recorder == nil || entity == nil {
		return
	}
	change := Diff(previous, entity.AuditAttributes(), entity.AuditExclusions())
	if change.Empty() {
		return
	}
	h.recorder.Record(ctx, ActionUpdated, entity.AuditKind(), entity.AuditID(), change)
}

// Deleted records a deletion: the full non-excluded pre-delete state is
// reported as the before image.
func (h *Hook) Deleted(ctx context.Context, entity models.Auditable) {
	if h == nil || h.recorder == nil || entity == nil {
		return
	}
	change := Diff(entity.AuditAttributes(), nil, entity.AuditExclusions())
	h.recorder.Record(ctx, ActionDeleted, entity.AuditKind(), entity.AuditID(), change)
}
