package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/internal/review"
	"github.com/dvcruz/progtrack/internal/services"
	appErrors "github.com/dvcruz/progtrack/pkg/errors"
	"github.com/dvcruz/progtrack/pkg/response"
)

// ReviewHandler exposes the reviewer queue and decision endpoints.
type ReviewHandler struct {
	svc *services.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// GET /api/review/pending
func (h *ReviewHandler) Pending(c *gin.Context) {
	pending, err := h.svc.Pending(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pending)
}

// GET /api/review/pending/counts
func (h *ReviewHandler) PendingCounts(c *gin.Context) {
	counts, err := h.svc.PendingCounts(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make(map[string]int64, len(counts))
	for kind, count := range counts {
		payload[kind.Slug()] = count
	}
	response.Success(c, http.StatusOK, payload)
}

type reviewRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	Remarks string `json:"remarks" validate:"max=1000"`
}

// POST /api/review/:kind/:id
func (h *ReviewHandler) Decide(c *gin.Context) {
	kind, err := models.ParseEntityKind(c.Param("kind"))
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("unknown submission kind"))
		return
	}

	var req reviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.svc.Transition(requestContext(c), kind, c.Param("id"), review.Decision{
		Status:  models.ReviewStatus(req.Status),
		Remarks: req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
