package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resolution records a board resolution or partnership agreement. Resolutions
// are tracked for auditing but do not go through the review workflow.
type Resolution struct {
	BaseModel

	ResolutionNumber   string    `gorm:"uniqueIndex;not null" json:"resolution_number"`
	Effectivity        time.Time `json:"effectivity"`
	Expiration         time.Time `json:"expiration"`
	ContactPerson      string    `json:"contact_person"`
	ContactNumberEmail string    `json:"contact_number_email"`
	PartnerAgency      string    `json:"partner_agency"`

	AttachmentPaths datatypes.JSON `json:"attachment_paths"`
	AttachmentLink  string         `json:"attachment_link"`

	OwnerID    string `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner      *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	IsArchived bool   `gorm:"not null;default:false;index" json:"is_archived"`
}

func (r *Resolution) AuditKind() EntityKind { return KindResolution }
func (r *Resolution) AuditID() string       { return r.ID }

func (r *Resolution) AuditAttributes() map[string]any {
	return map[string]any{
		"resolution_number":    r.ResolutionNumber,
		"effectivity":          r.Effectivity.Format(time.DateOnly),
		"expiration":           r.Expiration.Format(time.DateOnly),
		"contact_person":       r.ContactPerson,
		"contact_number_email": r.ContactNumberEmail,
		"partner_agency":       r.PartnerAgency,
		"attachment_link":      r.AttachmentLink,
		"owner_id":             r.OwnerID,
		"is_archived":          r.IsArchived,
	}
}

func (r *Resolution) AuditExclusions() []string {
	return DefaultAuditExclusions()
}
