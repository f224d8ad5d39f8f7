package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/models"
	appErrors "github.com/dvcruz/progtrack/pkg/errors"
	"github.com/dvcruz/progtrack/pkg/response"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	store *audit.Store
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(store *audit.Store) *AuditHandler {
	return &AuditHandler{store: store}
}

func parseAuditFilters(c *gin.Context) (audit.Filters, error) {
	var filters audit.Filters
	filters.ActorID = c.Query("actor_id")
	filters.Action = c.Query("action")
	filters.EntityID = c.Query("entity_id")
	filters.Search = c.Query("search")

	if kind := c.Query("entity_kind"); kind != "" {
		parsed, err := models.ParseEntityKind(kind)
		if err != nil {
			return filters, appErrors.NewBadRequest("unknown entity kind")
		}
		filters.EntityKind = parsed
	}

	if s := c.Query("since"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filters.Since = &t
		}
	}
	if u := c.Query("until"); u != "" {
		if t, err := time.Parse(time.RFC3339, u); err == nil {
			filters.Until = &t
		}
	}

	return filters, nil
}

// GET /api/audit
func (h *AuditHandler) List(c *gin.Context) {
	filters, err := parseAuditFilters(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 15)

	entries, total, err := h.store.List(requestContext(c), audit.ListOptions{
		Page:     page,
		PageSize: perPage,
		Filters:  filters,
		SortBy:   c.Query("sort_by"),
		SortDesc: c.DefaultQuery("sort_dir", "desc") != "asc",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, response.PageMeta(page, perPage, total))
}

// GET /api/audit/export
func (h *AuditHandler) Export(c *gin.Context) {
	filters, err := parseAuditFilters(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.store.Export(requestContext(c), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// GET /api/audit/statistics
func (h *AuditHandler) Statistics(c *gin.Context) {
	topN := parseIntQuery(c, "top", 5)

	stats, err := h.store.Aggregate(requestContext(c), topN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/audit/:kind/:id
func (h *AuditHandler) EntityHistory(c *gin.Context) {
	kind, err := models.ParseEntityKind(c.Param("kind"))
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("unknown entity kind"))
		return
	}

	entries, err := h.store.EntityHistory(requestContext(c), kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}
