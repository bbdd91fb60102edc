package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
	"github.com/noah-isme/bunkerpal-api/pkg/response"
)

type timetableService interface {
	Get(ctx context.Context, userID string) (*dto.TimetableResponse, error)
	Save(ctx context.Context, userID string, req dto.SaveTimetableRequest) (*dto.TimetableResponse, error)
	Subjects(ctx context.Context, userID string) ([]string, error)
}

// TimetableHandler serves the weekly schedule.
type TimetableHandler struct {
	service timetableService
}

func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Get godoc
// @Summary Weekly timetable
// @Description Returns the stored week, or a blank template with exists=false
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	res, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Save godoc
// @Summary Replace weekly timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SaveTimetableRequest true "Week keyed by weekday"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetable [put]
func (h *TimetableHandler) Save(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}
	res, err := h.service.Save(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Subjects godoc
// @Summary Distinct timetable subjects
// @Tags Timetable
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /timetable/subjects [get]
func (h *TimetableHandler) Subjects(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	subjects, err := h.service.Subjects(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SubjectsResponse{Subjects: subjects})
}
