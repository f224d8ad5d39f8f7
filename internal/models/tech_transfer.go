package models

import (
	"time"

	"gorm.io/datatypes"
)

// TechTransfer records a technology transfer project submitted by a college.
type TechTransfer struct {
	BaseModel
	Submission

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"`
	Purpose     string `gorm:"not null" json:"purpose"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Tags         string `json:"tags"`
	Leader       string `json:"leader"`
	Deliverables string `json:"deliverables"`

	AgencyPartner  string `json:"agency_partner"`
	ContactPerson  string `json:"contact_person"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
	ContactAddress string `json:"contact_address"`

	// Copyright is one of yes, no, pending.
	Copyright string `json:"copyright"`
	IPDetails string `json:"ip_details"`

	AttachmentPaths datatypes.JSON `json:"attachment_paths"`
	AttachmentLink  string         `json:"attachment_link"`

	CollegeID string   `gorm:"type:uuid;index;not null" json:"college_id"`
	College   *College `json:"college,omitempty"`
}

func (t *TechTransfer) AuditKind() EntityKind { return KindTechTransfer }
func (t *TechTransfer) AuditID() string       { return t.ID }

func (t *TechTransfer) AuditAttributes() map[string]any {
	attrs := map[string]any{
		"name":            t.Name,
		"description":     t.Description,
		"category":        t.Category,
		"purpose":         t.Purpose,
		"start_date":      t.StartDate.Format(time.DateOnly),
		"end_date":        t.EndDate.Format(time.DateOnly),
		"tags":            t.Tags,
		"leader":          t.Leader,
		"deliverables":    t.Deliverables,
		"agency_partner":  t.AgencyPartner,
		"contact_person":  t.ContactPerson,
		"contact_email":   t.ContactEmail,
		"contact_phone":   t.ContactPhone,
		"contact_address": t.ContactAddress,
		"copyright":       t.Copyright,
		"ip_details":      t.IPDetails,
		"attachment_link": t.AttachmentLink,
		"college_id":      t.CollegeID,
	}
	for key, value := range t.submissionAttributes() {
		attrs[key] = value
	}
	return attrs
}

func (t *TechTransfer) AuditExclusions() []string {
	return DefaultAuditExclusions()
}

func (t *TechTransfer) Review() *Submission { return &t.Submission }
