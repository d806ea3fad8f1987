package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the full dashboard payload: stat cards, 30-day trend,
// status and priority breakdowns, and recent activity
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, stats)
}
