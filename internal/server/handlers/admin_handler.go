package handlers

import (
	"context"
	"net/http"

	"community-service/internal/ports/models"
	"community-service/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

// Sweeper runs one expiry sweep on demand
type Sweeper interface {
	RunExpirySweep(ctx context.Context) error
}

type AdminHandler struct {
	sweeper Sweeper
}

func NewAdminHandler(sweeper Sweeper) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

// @Summary Trigger an expiry sweep
// @Description Close expired polls and publish their result notices immediately
// @Tags admin
// @Success 202
// @Failure 403 {object} map[string]string
// @Router /admin/polls/sweep [post]
func (h *AdminHandler) TriggerSweep(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !models.IsAdminRole(principal.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	if err := h.sweeper.RunExpirySweep(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}
