package models

// ReviewStatus enumerates the moderation lifecycle of a submission.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// Valid reports whether the status belongs to the known set.
func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission carries the review-workflow column group embedded by every
// review-eligible entity. OwnerID is set at creation and never changes.
type Submission struct {
	Status     ReviewStatus `gorm:"not null;default:pending;index" json:"status"`
	Remarks    *string      `json:"remarks"`
	OwnerID    string       `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner      *User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	IsArchived bool         `gorm:"not null;default:false;index" json:"is_archived"`
}

// submissionAttributes exposes the review columns for audit snapshots.
func (s *Submission) submissionAttributes() map[string]any {
	var remarks any
	if s.Remarks != nil {
		remarks = *s.Remarks
	}
	return map[string]any{
		"status":      string(s.Status),
		"remarks":     remarks,
		"owner_id":    s.OwnerID,
		"is_archived": s.IsArchived,
	}
}

// Reviewable is satisfied by every submission-type entity. The review state
// machine and visibility policy operate against this interface, never against
// concrete entity types.
type Reviewable interface {
	Auditable
	// Review exposes the embedded review column group for mutation.
	Review() *Submission
}
