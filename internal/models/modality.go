package models

// Modality records how a technology transfer is disseminated (TV, radio, online).
type Modality struct {
	BaseModel
	Submission

	TechTransferID string        `gorm:"type:uuid;index;not null" json:"tech_transfer_id"`
	TechTransfer   *TechTransfer `json:"tech_transfer,omitempty"`

	Modality      string `gorm:"not null" json:"modality"`
	TVChannel     string `json:"tv_channel"`
	Radio         string `json:"radio"`
	OnlineLink    string `json:"online_link"`
	TimeAir       string `json:"time_air"`
	Period        string `json:"period"`
	PartnerAgency string `json:"partner_agency"`
	HostedBy      string `json:"hosted_by"`
}

func (m *Modality) AuditKind() EntityKind { return KindModality }
func (m *Modality) AuditID() string       { return m.ID }

func (m *Modality) AuditAttributes() map[string]any {
	attrs := map[string]any{
		"tech_transfer_id": m.TechTransferID,
		"modality":         m.Modality,
		"tv_channel":       m.TVChannel,
		"radio":            m.Radio,
		"online_link":      m.OnlineLink,
		"time_air":         m.TimeAir,
		"period":           m.Period,
		"partner_agency":   m.PartnerAgency,
		"hosted_by":        m.HostedBy,
	}
	for key, value := range m.submissionAttributes() {
		attrs[key] = value
	}
	return attrs
}

func (m *Modality) AuditExclusions() []string {
	return DefaultAuditExclusions()
}

func (m *Modality) Review() *Submission { return &m.Submission }
