package review

import (
	"strings"

	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
	apperrors "github.com/dvcruz/progtrack/pkg/errors"
)

// Decision captures a reviewer's verdict on a pending submission.
type Decision struct {
	Status  models.ReviewStatus
	Remarks string
}

// Apply validates and performs a review transition on the submission's state.
// Only admins may move a submission away from pending; the caller persists the
// mutated entity afterwards.
func Apply(actor auditctx.Actor, target models.Reviewable, decision Decision) error {
	if target == nil {
		return apperrors.ErrNotFound
	}
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if decision.Status != models.StatusApproved && decision.Status != models.StatusRejected {
		return apperrors.NewValidation("status must be approved or rejected")
	}

	sub := target.Review()
	if sub.Status != models.StatusPending {
		return apperrors.NewValidation("only pending submissions can be reviewed")
	}

	sub.Status = decision.Status
	if remarks := strings.TrimSpace(decision.Remarks); remarks != "" {
		sub.Remarks = &remarks
	} else {
		sub.Remarks = nil
	}

	return nil
}

// ResetOnOwnerEdit applies the resubmission rule: when the owning actor edits
// a rejected submission it reverts to pending and the reviewer's remarks are
// cleared. Returns true when the reset fired.
func ResetOnOwnerEdit(actor auditctx.Actor, target models.Reviewable) bool {
	if target == nil {
		return false
	}

	sub := target.Review()
	if sub.Status != models.StatusRejected {
		return false
	}
	if actor.UserID == "" || actor.UserID != sub.OwnerID {
		return false
	}

	sub.Status = models.StatusPending
	sub.Remarks = nil
	return true
}
