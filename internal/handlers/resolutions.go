package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/services"
	"github.com/dvcruz/progtrack/pkg/response"
)

// ResolutionHandler exposes board resolution endpoints.
type ResolutionHandler struct {
	svc *services.ResolutionService
}

// NewResolutionHandler constructs a ResolutionHandler.
func NewResolutionHandler(svc *services.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{svc: svc}
}

// GET /api/resolutions
func (h *ResolutionHandler) List(c *gin.Context) {
	resolutions, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resolutions)
}

// GET /api/resolutions/:id
func (h *ResolutionHandler) Get(c *gin.Context) {
	resolution, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resolution)
}

type resolutionRequest struct {
	ResolutionNumber   string    `json:"resolution_number" validate:"required"`
	Effectivity        time.Time `json:"effectivity" validate:"required"`
	Expiration         time.Time `json:"expiration" validate:"required"`
	ContactPerson      string    `json:"contact_person"`
	ContactNumberEmail string    `json:"contact_number_email"`
	PartnerAgency      string    `json:"partner_agency"`
	AttachmentLink     string    `json:"attachment_link"`
}

func (r resolutionRequest) toInput() services.ResolutionInput {
	return services.ResolutionInput{
		ResolutionNumber:   r.ResolutionNumber,
		Effectivity:        r.Effectivity,
		Expiration:         r.Expiration,
		ContactPerson:      r.ContactPerson,
		ContactNumberEmail: r.ContactNumberEmail,
		PartnerAgency:      r.PartnerAgency,
		AttachmentLink:     r.AttachmentLink,
	}
}

// POST /api/resolutions
func (h *ResolutionHandler) Create(c *gin.Context) {
	var req resolutionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resolution, err := h.svc.Create(requestContext(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resolution)
}

// PUT /api/resolutions/:id
func (h *ResolutionHandler) Update(c *gin.Context) {
	var req resolutionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resolution, err := h.svc.Update(requestContext(c), c.Param("id"), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resolution)
}

// POST /api/resolutions/:id/archive
func (h *ResolutionHandler) Archive(c *gin.Context) {
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
