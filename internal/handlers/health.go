package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/config"
	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/services"
)

// HealthHandler reports service and subsystem status.
type HealthHandler struct {
	storeDriver string
}

func NewHealthHandler(storeDriver string) *HealthHandler {
	return &HealthHandler{storeDriver: storeDriver}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	storeStatus := "ok"
	if h.storeDriver == config.StoreDriverDatabase {
		sqlDB, err := models.GetDB().DB()
		if err != nil {
			storeStatus = "error: " + err.Error()
			overall = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			storeStatus = "error: " + err.Error()
			overall = "unhealthy"
		}
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "trackflow",
		"components": gin.H{
			"store":       storeStatus,
			"driver":      h.storeDriver,
			"sse_clients": services.GetEventHub().ClientCount(),
		},
	})
}
