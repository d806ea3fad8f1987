package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/store"
	"github.com/trackflow/trackflow/backend/pkg/response"
)

// writeError maps store sentinel errors onto the API error taxonomy.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, store.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, store.ErrBackend):
		response.BadGateway(c, err.Error())
	default:
		response.Error(c, err)
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
