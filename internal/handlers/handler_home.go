package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// getHealth godoc
// @Summary Show the status of the server
// @Description Reports OK when the server is up and the database answers.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "Database unavailable"
// @Router /health [get]
func getHealth(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
}
