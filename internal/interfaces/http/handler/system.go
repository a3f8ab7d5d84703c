package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness endpoints
type SystemHandler struct {
	startTime time.Time
	ping      func() error
}

// NewSystemHandler creates a new SystemHandler. ping reports database
// reachability and may be nil.
func NewSystemHandler(ping func() error) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		ping:      ping,
	}
}

// RegisterRoutes registers /health on the engine root, outside the API
// group
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if h.ping != nil {
		if err := h.ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status": status,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
