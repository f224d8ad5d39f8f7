package models

// Campus is a physical university site that hosts colleges.
type Campus struct {
	BaseModel
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Location string    `json:"location"`
	Colleges []College `gorm:"foreignKey:CampusID" json:"colleges,omitempty"`
}

func (c *Campus) AuditKind() EntityKind { return KindCampus }
func (c *Campus) AuditID() string       { return c.ID }

func (c *Campus) AuditAttributes() map[string]any {
	return map[string]any{
		"name":     c.Name,
		"location": c.Location,
	}
}

func (c *Campus) AuditExclusions() []string {
	return DefaultAuditExclusions()
}
