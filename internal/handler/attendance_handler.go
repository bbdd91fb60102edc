package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	"github.com/noah-isme/bunkerpal-api/internal/service"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
	"github.com/noah-isme/bunkerpal-api/pkg/response"
)

type attendanceService interface {
	Resolve(ctx context.Context, userID, date string) (*service.DayPlan, error)
	SaveDay(ctx context.Context, userID, date string, req dto.SaveDayRequest) (*service.DayPlan, error)
	MarkHoliday(ctx context.Context, userID, date string) (*service.DayPlan, error)
}

type recalculationService interface {
	Recalculate(ctx context.Context, userID string) ([]models.SubjectSummary, error)
	ListSummaries(ctx context.Context, userID string) ([]models.SubjectSummary, error)
}

// AttendanceHandler serves daily logs and the aggregator.
type AttendanceHandler struct {
	days   attendanceService
	recalc recalculationService
}

func NewAttendanceHandler(days attendanceService, recalc recalculationService) *AttendanceHandler {
	return &AttendanceHandler{days: days, recalc: recalc}
}

// ResolveDay godoc
// @Summary Resolve a day
// @Description Returns the stored log for the date, or the scheduled periods all marked attended
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance/days/{date} [get]
func (h *AttendanceHandler) ResolveDay(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	plan, err := h.days.Resolve(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plan)
}

// SaveDay godoc
// @Summary Save a day
// @Description Replaces the date's log with exactly the given periods and recalculates
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param payload body dto.SaveDayRequest true "Periods keyed by index"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /attendance/days/{date} [put]
func (h *AttendanceHandler) SaveDay(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.SaveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	plan, err := h.days.SaveDay(c.Request.Context(), userID, c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plan)
}

// MarkHoliday godoc
// @Summary Mark a holiday
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /attendance/days/{date}/holiday [post]
func (h *AttendanceHandler) MarkHoliday(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	plan, err := h.days.MarkHoliday(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plan)
}

// Recalculate godoc
// @Summary Rebuild subject summaries
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /attendance/recalculate [post]
func (h *AttendanceHandler) Recalculate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	subjects, err := h.recalc.Recalculate(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RecalculateResponse{Subjects: subjects})
}

// Subjects godoc
// @Summary Stored subject summaries
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *AttendanceHandler) Subjects(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	subjects, err := h.recalc.ListSummaries(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RecalculateResponse{Subjects: subjects})
}
