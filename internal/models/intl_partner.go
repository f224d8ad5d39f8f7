package models

import (
	"time"

	"gorm.io/datatypes"
)

// IntlPartner records an activity conducted with an international partner
// agency. Partners are tracked for auditing but, like resolutions, never
// enter the review workflow.
type IntlPartner struct {
	BaseModel

	AgencyPartner     string    `gorm:"not null" json:"agency_partner"`
	Location          string    `gorm:"not null" json:"location"`
	ActivityConducted string    `gorm:"not null" json:"activity_conducted"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	NumParticipants   int       `json:"number_of_participants"`
	NumCommittee      int       `json:"number_of_committee"`
	Narrative         string    `json:"narrative"`

	AttachmentPaths datatypes.JSON `json:"attachment_paths"`
	AttachmentLink  string         `json:"attachment_link"`

	CollegeID string   `gorm:"type:uuid;index;not null" json:"college_id"`
	College   *College `json:"college,omitempty"`

	OwnerID    string `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner      *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	IsArchived bool   `gorm:"not null;default:false;index" json:"is_archived"`
}

func (p *IntlPartner) AuditKind() EntityKind { return KindIntlPartner }
func (p *IntlPartner) AuditID() string       { return p.ID }

func (p *IntlPartner) AuditAttributes() map[string]any {
	return map[string]any{
		"agency_partner":         p.AgencyPartner,
		"location":               p.Location,
		"activity_conducted":     p.ActivityConducted,
		"start_date":             p.StartDate.Format(time.DateOnly),
		"end_date":               p.EndDate.Format(time.DateOnly),
		"number_of_participants": p.NumParticipants,
		"number_of_committee":    p.NumCommittee,
		"narrative":              p.Narrative,
		"attachment_link":        p.AttachmentLink,
		"college_id":             p.CollegeID,
		"owner_id":               p.OwnerID,
		"is_archived":            p.IsArchived,
	}
}

func (p *IntlPartner) AuditExclusions() []string {
	return DefaultAuditExclusions()
}
