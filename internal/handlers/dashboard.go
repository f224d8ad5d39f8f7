package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/services"
	"github.com/dvcruz/progtrack/pkg/response"
)

// DashboardHandler exposes the overview endpoints backing the dashboard.
type DashboardHandler struct {
	svc *services.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /api/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	overview, err := h.svc.AdminOverview(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}

// GET /api/dashboard/me
func (h *DashboardHandler) Me(c *gin.Context) {
	overview, err := h.svc.UserOverview(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}
