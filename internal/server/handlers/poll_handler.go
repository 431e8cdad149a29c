package handlers

import (
	"net/http"
	"strconv"

	"community-service/internal/ports/models"
	"community-service/internal/server/middleware"
	"community-service/internal/server/service"
	"community-service/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService *service.PollService
}

func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// @Summary Create a poll
// @Description Create a poll with at least two options on the caller's apartment poll board
// @Tags polls
// @Accept json
// @Produce json
// @Param poll body models.CreatePollRequest true "Poll"
// @Success 201 {object} models.PollResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollService.Create(c.Request.Context(), principal.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// @Summary List polls
// @Description List the polls visible to the caller, paginated
// @Tags polls
// @Produce json
// @Param page query int false "Page (>= 1)"
// @Param limit query int false "Page size (1-100, default 11)"
// @Success 200 {object} models.PollListResponse
// @Router /polls [get]
func (h *PollHandler) ListPolls(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	polls, err := h.pollService.List(c.Request.Context(), principal, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, polls)
}

// @Summary Get poll detail
// @Tags polls
// @Produce json
// @Param poll_id path int true "Poll ID"
// @Success 200 {object} models.PollResponse
// @Failure 404 {object} map[string]string
// @Router /polls/{poll_id} [get]
func (h *PollHandler) GetPollDetail(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pollID, err := pathID(c, "poll_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
		return
	}

	poll, err := h.pollService.Detail(c.Request.Context(), pollID, principal)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// @Summary Update a poll
// @Description Replace a poll's fields before it starts; a supplied options array replaces the option set
// @Tags polls
// @Accept json
// @Produce json
// @Param poll_id path int true "Poll ID"
// @Param poll body models.UpdatePollRequest true "Poll"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /polls/{poll_id} [put]
func (h *PollHandler) UpdatePoll(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pollID, err := pathID(c, "poll_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
		return
	}

	var req models.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pollService.Update(c.Request.Context(), pollID, principal, req); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete a poll
// @Description Delete a poll before it starts
// @Tags polls
// @Param poll_id path int true "Poll ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /polls/{poll_id} [delete]
func (h *PollHandler) DeletePoll(c *gin.Context) {
	principal, err := middleware.GetPrincipalFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pollID, err := pathID(c, "poll_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
		return
	}

	if err := h.pollService.Delete(c.Request.Context(), pollID, principal); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func writeError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message})
}
