package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/review"
	"github.com/dvcruz/progtrack/internal/services"
	appErrors "github.com/dvcruz/progtrack/pkg/errors"
	"github.com/dvcruz/progtrack/pkg/response"
)

// SubmissionHandler serves the shared REST surface of one submission kind.
// Instantiated once per kind and mounted under the kind's URL slug.
type SubmissionHandler[T any, PT services.SubmissionPtr[T]] struct {
	svc *services.SubmissionService[T, PT]
}

// NewSubmissionHandler constructs the handler for one submission kind.
func NewSubmissionHandler[T any, PT services.SubmissionPtr[T]](svc *services.SubmissionService[T, PT]) *SubmissionHandler[T, PT] {
	return &SubmissionHandler[T, PT]{svc: svc}
}

// GET /api/<kind>?view=personal|general|report
func (h *SubmissionHandler[T, PT]) List(c *gin.Context) {
	view, ok := parseView(c.DefaultQuery("view", "general"))
	if !ok {
		response.Error(c, appErrors.NewBadRequest("view must be personal, general, or report"))
		return
	}

	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 15)

	items, total, err := h.svc.List(requestContext(c), view, services.ListSubmissionsOptions{
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, response.PageMeta(page, perPage, total))
}

// GET /api/<kind>/:id
func (h *SubmissionHandler[T, PT]) Get(c *gin.Context) {
	entity, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

// POST /api/<kind>
func (h *SubmissionHandler[T, PT]) Create(c *gin.Context) {
	entity := PT(new(T))
	if !bindAndValidate(c, (*T)(entity)) {
		return
	}

	if err := h.svc.Create(requestContext(c), entity); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entity)
}

// PUT /api/<kind>/:id
func (h *SubmissionHandler[T, PT]) Update(c *gin.Context) {
	entity, err := h.svc.Update(requestContext(c), c.Param("id"), func(target PT) error {
		// Partial update: absent JSON fields keep their stored values. The
		// service guards the review column group from non-admin edits.
		if err := c.ShouldBindJSON(target); err != nil {
			return appErrors.NewBadRequest("invalid JSON payload")
		}
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

type archiveRequest struct {
	Password string `json:"password" validate:"required"`
}

// POST /api/<kind>/:id/archive
func (h *SubmissionHandler[T, PT]) Archive(c *gin.Context) {
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

// DELETE /api/<kind>/:id
func (h *SubmissionHandler[T, PT]) Delete(c *gin.Context) {
	if err := h.svc.Delete(requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}

// GET /api/<kind>/statistics
func (h *SubmissionHandler[T, PT]) Statistics(c *gin.Context) {
	counts, err := h.svc.CountByStatus(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, counts)
}

func parseView(value string) (review.ViewKind, bool) {
	switch value {
	case "personal":
		return review.PersonalView, true
	case "general", "":
		return review.GeneralView, true
	case "report":
		return review.ReportView, true
	default:
		return review.GeneralView, false
	}
}
