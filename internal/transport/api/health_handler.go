package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	pinger Pinger
}

func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Show answers 200 while the storage is reachable and 503 otherwise.
func (h *HealthHandler) Show(c *gin.Context) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			_ = c.AbortWithError(http.StatusServiceUnavailable, err).SetType(gin.ErrorTypePrivate)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
