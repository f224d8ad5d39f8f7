package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/services"
	"github.com/dvcruz/progtrack/pkg/response"
)

// CollegeHandler exposes college directory endpoints.
type CollegeHandler struct {
	svc *services.CollegeService
}

// NewCollegeHandler constructs a CollegeHandler.
func NewCollegeHandler(svc *services.CollegeService) *CollegeHandler {
	return &CollegeHandler{svc: svc}
}

// GET /api/colleges
func (h *CollegeHandler) List(c *gin.Context) {
	colleges, err := h.svc.List(requestContext(c), c.Query("campus_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, colleges)
}

// GET /api/colleges/:id
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, college)
}

type collegeRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	CampusID string `json:"campus_id" validate:"required"`
}

// POST /api/colleges
func (h *CollegeHandler) Create(c *gin.Context) {
	var req collegeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	college, err := h.svc.Create(requestContext(c), services.CollegeInput{
		Name:     req.Name,
		Code:     req.Code,
		CampusID: req.CampusID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, college)
}

// PUT /api/colleges/:id
func (h *CollegeHandler) Update(c *gin.Context) {
	var req collegeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	college, err := h.svc.Update(requestContext(c), c.Param("id"), services.CollegeInput{
		Name:     req.Name,
		Code:     req.Code,
		CampusID: req.CampusID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, college)
}

// DELETE /api/colleges/:id
func (h *CollegeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}
