package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/pkg/response"
)

type ActivityLogHandler struct {
	logService *services.ActivityLogService
}

func NewActivityLogHandler(logService *services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{logService: logService}
}

// List returns paginated, filterable activity log entries
// GET /api/activity
func (h *ActivityLogHandler) List(c *gin.Context) {
	var req services.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.logService.List(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}
