package models

// College is an academic unit within a campus; users and submissions are
// scoped to a college.
type College struct {
	BaseModel
	Name     string  `gorm:"not null" json:"name"`
	Code     string  `gorm:"uniqueIndex;not null" json:"code"`
	CampusID string  `gorm:"type:uuid;index;not null" json:"campus_id"`
	Campus   *Campus `json:"campus,omitempty"`
}

func (c *College) AuditKind() EntityKind { return KindCollege }
func (c *College) AuditID() string       { return c.ID }

func (c *College) AuditAttributes() map[string]any {
	return map[string]any{
		"name":      c.Name,
		"code":      c.Code,
		"campus_id": c.CampusID,
	}
}

func (c *College) AuditExclusions() []string {
	return DefaultAuditExclusions()
}
