package models

import "fmt"

// EntityKind is the closed set of tracked entity types. Audit entries carry a
// kind plus the entity identifier instead of a typed foreign key, so deleted
// entities stay auditable.
type EntityKind string

const (
	KindUser             EntityKind = "User"
	KindCampus           EntityKind = "Campus"
	KindCollege          EntityKind = "College"
	KindTechTransfer     EntityKind = "TechTransfer"
	KindAward            EntityKind = "Award"
	KindEngagement       EntityKind = "Engagement"
	KindModality         EntityKind = "Modality"
	KindImpactAssessment EntityKind = "ImpactAssessment"
	KindResolution       EntityKind = "Resolution"
	KindIntlPartner      EntityKind = "IntlPartner"
)

// TrackedKinds lists every kind that participates in audit logging.
var TrackedKinds = []EntityKind{
	KindUser,
	KindCampus,
	KindCollege,
	KindTechTransfer,
	KindAward,
	KindEngagement,
	KindModality,
	KindImpactAssessment,
	KindResolution,
	KindIntlPartner,
}

// SubmissionKinds lists the subset of kinds that go through the review workflow.
var SubmissionKinds = []EntityKind{
	KindTechTransfer,
	KindAward,
	KindEngagement,
	KindModality,
	KindImpactAssessment,
}

// slugs used in URLs and review requests, e.g. /review/tech-transfer/:id.
var kindSlugs = map[string]EntityKind{
	"user":                  KindUser,
	"campus":                KindCampus,
	"college":               KindCollege,
	"tech-transfer":         KindTechTransfer,
	"award":                 KindAward,
	"engagement":            KindEngagement,
	"modality":              KindModality,
	"impact-assessment":     KindImpactAssessment,
	"resolution":            KindResolution,
	"international-partner": KindIntlPartner,
}

// ParseEntityKind resolves a URL slug or canonical name into an EntityKind.
func ParseEntityKind(value string) (EntityKind, error) {
	if kind, ok := kindSlugs[value]; ok {
		return kind, nil
	}
	for _, kind := range TrackedKinds {
		if string(kind) == value {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", value)
}

// Slug returns the URL form of the kind.
func (k EntityKind) Slug() string {
	for slug, kind := range kindSlugs {
		if kind == k {
			return slug
		}
	}
	return string(k)
}

// Valid reports whether the kind belongs to the tracked set.
func (k EntityKind) Valid() bool {
	for _, kind := range TrackedKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Reviewable reports whether the kind participates in the review workflow.
func (k EntityKind) Reviewable() bool {
	for _, kind := range SubmissionKinds {
		if kind == k {
			return true
		}
	}
	return false
}
