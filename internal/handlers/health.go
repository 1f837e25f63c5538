package handlers

import (
	"net/http"
	"tasklist/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	status := ""
	if h.remote != nil {
		status = h.remote.Status()
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Remote: status})
}
