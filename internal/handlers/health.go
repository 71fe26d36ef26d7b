package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports dependency status without failing the endpoint itself;
// load balancers read the body, not just the code.
func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var dbPing, cachePing func(context.Context) error
	if h.db != nil {
		dbPing = h.db.Ping
	}
	if h.cache != nil {
		cachePing = func(ctx context.Context) error { return h.cache.Ping(ctx).Err() }
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"database":    h.probe(ctx, "database", dbPing),
		"cache":       h.probe(ctx, "cache", cachePing),
		"environment": h.cfg.Environment,
	})
}

func (h HandlerSet) probe(ctx context.Context, name string, ping func(context.Context) error) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		h.log.Error().Err(err).Str("dependency", name).Msg("health probe failed")
		return "error"
	}
	return "ok"
}
