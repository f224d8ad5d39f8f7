package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry is one immutable record of a create/update/delete or domain event.
// Rows are append-only: no update or delete path exists in application code.
type AuditEntry struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	ActorID    *string        `gorm:"type:uuid;index" json:"actor_id"`
	Actor      *User          `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Action     string         `gorm:"not null;index" json:"action"`
	EntityKind EntityKind     `gorm:"not null;index:idx_audit_entity" json:"entity_kind"`
	EntityID   string         `gorm:"index:idx_audit_entity" json:"entity_id"`
	Before     datatypes.JSON `json:"before_values"`
	After      datatypes.JSON `json:"after_values"`
	IPAddress  string         `json:"ip_address"`
	UserAgent  string         `json:"user_agent"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"`
}

// TableName keeps the audit trail in its own table.
func (AuditEntry) TableName() string {
	return "audit_entries"
}

// BeforeCreate assigns the identifier and stamps the entry exactly once.
func (e *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	return nil
}

// Description renders the human-readable summary used for free-text search,
// e.g. "Updated TechTransfer".
func (e *AuditEntry) Description() string {
	action := e.Action
	if action == "" {
		action = "changed"
	}
	action = strings.ToUpper(action[:1]) + action[1:]
	kind := string(e.EntityKind)
	if kind == "" {
		kind = "Unknown"
	}
	return fmt.Sprintf("%s %s", action, kind)
}
