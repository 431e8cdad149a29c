package handlers

import (
	"net/http"

	"community-service/internal/server/middleware"
	"community-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// @Summary Cast a vote
// @Description Vote for an option inside the poll window; one ballot per user per poll
// @Tags votes
// @Produce json
// @Param option_id path int true "Option ID"
// @Success 200 {object} models.VoteResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /options/{option_id}/vote [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	optionID, err := pathID(c, "option_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}

	result, err := h.voteService.Cast(c.Request.Context(), optionID, principal.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Cancel a vote
// @Description Retract the caller's ballot for an option before the poll ends
// @Tags votes
// @Produce json
// @Param option_id path int true "Option ID"
// @Success 200 {object} models.VoteDeleteResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /options/{option_id}/vote [delete]
func (h *VoteHandler) DeleteVote(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	optionID, err := pathID(c, "option_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}

	result, err := h.voteService.Retract(c.Request.Context(), optionID, principal.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
