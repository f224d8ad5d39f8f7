package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/services"
	"github.com/dvcruz/progtrack/pkg/response"
)

// IntlPartnerHandler exposes international partner endpoints.
type IntlPartnerHandler struct {
	svc *services.IntlPartnerService
}

// NewIntlPartnerHandler constructs an IntlPartnerHandler.
func NewIntlPartnerHandler(svc *services.IntlPartnerService) *IntlPartnerHandler {
	return &IntlPartnerHandler{svc: svc}
}

// GET /api/international-partners
func (h *IntlPartnerHandler) List(c *gin.Context) {
	partners, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, partners)
}

// GET /api/international-partners/:id
func (h *IntlPartnerHandler) Get(c *gin.Context) {
	partner, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, partner)
}

type intlPartnerRequest struct {
	AgencyPartner     string    `json:"agency_partner" validate:"required"`
	Location          string    `json:"location" validate:"required"`
	ActivityConducted string    `json:"activity_conducted" validate:"required"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	NumParticipants   int       `json:"number_of_participants" validate:"gte=0"`
	NumCommittee      int       `json:"number_of_committee" validate:"gte=0"`
	Narrative         string    `json:"narrative"`
	AttachmentLink    string    `json:"attachment_link"`
	CollegeID         string    `json:"college_id" validate:"required"`
}

func (r intlPartnerRequest) toInput() services.IntlPartnerInput {
	return services.IntlPartnerInput{
		AgencyPartner:     r.AgencyPartner,
		Location:          r.Location,
		ActivityConducted: r.ActivityConducted,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		NumParticipants:   r.NumParticipants,
		NumCommittee:      r.NumCommittee,
		Narrative:         r.Narrative,
		AttachmentLink:    r.AttachmentLink,
		CollegeID:         r.CollegeID,
	}
}

// POST /api/international-partners
func (h *IntlPartnerHandler) Create(c *gin.Context) {
	var req intlPartnerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	partner, err := h.svc.Create(requestContext(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, partner)
}

// PUT /api/international-partners/:id
func (h *IntlPartnerHandler) Update(c *gin.Context) {
	var req intlPartnerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	partner, err := h.svc.Update(requestContext(c), c.Param("id"), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, partner)
}

// POST /api/international-partners/:id/archive
func (h *IntlPartnerHandler) Archive(c *gin.Context) {
	var req archiveRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.Archive(requestContext(c), c.Param("id"), req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "archived"})
}
