package review

import (
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/auditctx"
	"github.com/dvcruz/progtrack/internal/models"
)

// ViewKind distinguishes the listing surfaces that apply different visibility
// rules.
type ViewKind int

const (
	// PersonalView is an owner's private listing ("my submissions").
	PersonalView ViewKind = iota
	// GeneralView is the shared listing surface.
	GeneralView
	// ReportView feeds aggregate reports; it is the most restrictive surface.
	ReportView
)

// Policy derives, per actor role and ownership, which submissions are visible
// on a listing surface. The personal-view rule is configurable per entity kind
// because some record types expose only approved items even to their owners.
type Policy struct {
	// OwnAnyStatus lets owners see their own submissions in any review state
	// on the personal view. When false, owners see only approved records.
	OwnAnyStatus bool
}

// DefaultPolicy matches the behaviour of most submission kinds.
func DefaultPolicy() Policy {
	return Policy{OwnAnyStatus: true}
}

// Scope narrows a submission query to the rows the actor may see on the given
// surface. Archived rows are always excluded.
func (p Policy) Scope(query *gorm.DB, actor auditctx.Actor, view ViewKind) *gorm.DB {
	query = query.Where("is_archived = ?", false)

	switch view {
	case PersonalView:
		query = query.Where("owner_id = ?", actor.UserID)
		if !p.OwnAnyStatus {
			query = query.Where("status = ?", models.StatusApproved)
		}
	case GeneralView:
		if actor.IsAdmin() {
			query = query.Where("status = ?", models.StatusApproved)
		} else if p.OwnAnyStatus {
			query = query.Where("owner_id = ?", actor.UserID)
		} else {
			query = query.Where("owner_id = ? AND status = ?", actor.UserID, models.StatusApproved)
		}
	case ReportView:
		query = query.Where("status = ?", models.StatusApproved)
		if !actor.IsAdmin() {
			query = query.Where("owner_id = ?", actor.UserID)
		}
	}

	return query
}

// CanSee reports whether the actor may fetch one specific submission directly.
// Owners and admins see their records in any non-archived state; everyone else
// gets a not-found to avoid confirming the record exists.
func (p Policy) CanSee(actor auditctx.Actor, target models.Reviewable) bool {
	if target == nil {
		return false
	}

	sub := target.Review()
	if sub.IsArchived {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return sub.OwnerID == actor.UserID
}
