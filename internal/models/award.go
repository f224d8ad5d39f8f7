package models

import (
	"time"

	"gorm.io/datatypes"
)

// Award records a recognition received by a college or its members.
type Award struct {
	BaseModel
	Submission

	AwardName    string    `gorm:"not null" json:"award_name"`
	Description  string    `json:"description"`
	DateReceived time.Time `json:"date_received"`
	EventDetails string    `json:"event_details"`
	Location     string    `json:"location"`
	AwardingBody string    `json:"awarding_body"`
	// PeopleInvolved is a comma separated list of names.
	PeopleInvolved string `json:"people_involved"`

	AttachmentPaths datatypes.JSON `json:"attachment_paths"`
	AttachmentLink  string         `json:"attachment_link"`

	CollegeID string   `gorm:"type:uuid;index;not null" json:"college_id"`
	College   *College `json:"college,omitempty"`
}

func (a *Award) AuditKind() EntityKind { return KindAward }
func (a *Award) AuditID() string       { return a.ID }

func (a *Award) AuditAttributes() map[string]any {
	attrs := map[string]any{
		"award_name":      a.AwardName,
		"description":     a.Description,
		"date_received":   a.DateReceived.Format(time.DateOnly),
		"event_details":   a.EventDetails,
		"location":        a.Location,
		"awarding_body":   a.AwardingBody,
		"people_involved": a.PeopleInvolved,
		"attachment_link": a.AttachmentLink,
		"college_id":      a.CollegeID,
	}
	for key, value := range a.submissionAttributes() {
		attrs[key] = value
	}
	return attrs
}

func (a *Award) AuditExclusions() []string {
	return DefaultAuditExclusions()
}

func (a *Award) Review() *Submission { return &a.Submission }
