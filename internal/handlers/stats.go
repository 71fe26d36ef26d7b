package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) Stats(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
