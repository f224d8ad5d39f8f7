package models

import (
	"time"

	"gorm.io/datatypes"
)

// Engagement records a community extension activity carried out by a college.
type Engagement struct {
	BaseModel
	Submission

	AgencyPartner     string    `gorm:"not null" json:"agency_partner"`
	Location          string    `gorm:"not null" json:"location"`
	ActivityConducted string    `gorm:"not null" json:"activity_conducted"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	NumParticipants   int       `json:"number_of_participants"`
	FacultyInvolved   string    `json:"faculty_involved"`
	Narrative         string    `json:"narrative"`

	AttachmentPaths datatypes.JSON `json:"attachment_paths"`
	AttachmentLink  string         `json:"attachment_link"`

	CollegeID string   `gorm:"type:uuid;index;not null" json:"college_id"`
	College   *College `json:"college,omitempty"`
}

func (e *Engagement) AuditKind() EntityKind { return KindEngagement }
func (e *Engagement) AuditID() string       { return e.ID }

func (e *Engagement) AuditAttributes() map[string]any {
	attrs := map[string]any{
		"agency_partner":         e.AgencyPartner,
		"location":               e.Location,
		"activity_conducted":     e.ActivityConducted,
		"start_date":             e.StartDate.Format(time.DateOnly),
		"end_date":               e.EndDate.Format(time.DateOnly),
		"number_of_participants": e.NumParticipants,
		"faculty_involved":       e.FacultyInvolved,
		"narrative":              e.Narrative,
		"attachment_link":        e.AttachmentLink,
		"college_id":             e.CollegeID,
	}
	for key, value := range e.submissionAttributes() {
		attrs[key] = value
	}
	return attrs
}

func (e *Engagement) AuditExclusions() []string {
	return DefaultAuditExclusions()
}

func (e *Engagement) Review() *Submission { return &e.Submission }
