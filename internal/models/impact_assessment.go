package models

// ImpactAssessment records the measured reach of a technology transfer.
type ImpactAssessment struct {
	BaseModel
	Submission

	TechTransferID string        `gorm:"type:uuid;index;not null" json:"tech_transfer_id"`
	TechTransfer   *TechTransfer `json:"tech_transfer,omitempty"`

	Beneficiary            string `gorm:"not null" json:"beneficiary"`
	GeographicCoverage     string `json:"geographic_coverage"`
	NumDirectBeneficiary   int    `json:"num_direct_beneficiary"`
	NumIndirectBeneficiary int    `json:"num_indirect_beneficiary"`
}

func (i *ImpactAssessment) AuditKind() EntityKind { return KindImpactAssessment }
func (i *ImpactAssessment) AuditID() string       { return i.ID }

func (i *ImpactAssessment) AuditAttributes() map[string]any {
	attrs := map[string]any{
		"tech_transfer_id":         i.TechTransferID,
		"beneficiary":              i.Beneficiary,
		"geographic_coverage":      i.GeographicCoverage,
		"num_direct_beneficiary":   i.NumDirectBeneficiary,
		"num_indirect_beneficiary": i.NumIndirectBeneficiary,
	}
	for key, value := range i.submissionAttributes() {
		attrs[key] = value
	}
	return attrs
}

func (i *ImpactAssessment) AuditExclusions() []string {
	return DefaultAuditExclusions()
}

func (i *ImpactAssessment) Review() *Submission { return &i.Submission }
