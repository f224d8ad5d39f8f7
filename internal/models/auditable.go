package models

// defaultAuditExclusions lists fields never recorded in before/after values.
// Individual models extend this set (User additionally hides credentials).
var defaultAuditExclusions = []string{"created_at", "updated_at"}

// Auditable is satisfied by every tracked entity type. The lifecycle hook and
// change detector operate purely against this interface.
type Auditable interface {
	// AuditKind returns the polymorphic discriminator for audit rows.
	AuditKind() EntityKind
	// AuditID returns the entity identifier referenced by audit rows.
	AuditID() string
	// AuditAttributes snapshots the entity's persisted fields by column name.
	AuditAttributes() map[string]any
	// AuditExclusions lists field names that must never appear in a diff.
	AuditExclusions() []string
}

// DefaultAuditExclusions returns a copy of the baseline exclusion set.
func DefaultAuditExclusions() []string {
	out := make([]string, len(defaultAuditExclusions))
	copy(out, defaultAuditExclusions)
	return out
}
