package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bunkerpal-api/pkg/response"
)

// SessionHandler exposes the load-then-recalculate workflow.
type SessionHandler struct {
	service sessionService
}

func NewSessionHandler(svc sessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Establish godoc
// @Summary Establish session
// @Description Report timetable presence, rebuild subject summaries and return a fresh dashboard
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /session [post]
func (h *SessionHandler) Establish(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	res, err := h.service.Establish(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
