package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/services"
	"github.com/dvcruz/progtrack/pkg/response"
)

// CampusHandler exposes campus directory endpoints.
type CampusHandler struct {
	svc *services.CampusService
}

// NewCampusHandler constructs a CampusHandler.
func NewCampusHandler(svc *services.CampusService) *CampusHandler {
	return &CampusHandler{svc: svc}
}

// GET /api/campuses
func (h *CampusHandler) List(c *gin.Context) {
	campuses, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, campuses)
}

// GET /api/campuses/:id
func (h *CampusHandler) Get(c *gin.Context) {
	campus, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, campus)
}

type campusRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

// POST /api/campuses
func (h *CampusHandler) Create(c *gin.Context) {
	var req campusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	campus, err := h.svc.Create(requestContext(c), services.CampusInput{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, campus)
}

// PUT /api/campuses/:id
func (h *CampusHandler) Update(c *gin.Context) {
	var req campusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	campus, err := h.svc.Update(requestContext(c), c.Param("id"), services.CampusInput{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, campus)
}

// DELETE /api/campuses/:id
func (h *CampusHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}
