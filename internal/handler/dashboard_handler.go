package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/middleware"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	"github.com/noah-isme/bunkerpal-api/internal/service"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
	"github.com/noah-isme/bunkerpal-api/pkg/response"
)

type dashboardService interface {
	Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, bool, error)
	Thresholds() service.Thresholds
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service   dashboardService
	validator *validator.Validate
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc dashboardService, validate *validator.Validate) *DashboardHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &DashboardHandler{service: svc, validator: validate}
}

// ProjectionResponse answers GET /projection.
type ProjectionResponse struct {
	Attended   int                `json:"attended"`
	Total      int                `json:"total"`
	Percent    int                `json:"percent"`
	Status     string             `json:"status"`
	Projection dto.ProjectionView `json:"projection"`
}

// Dashboard godoc
// @Summary Attendance dashboard
// @Description Per-subject percentages, bands, projections and advice. meta.cache_hit reports cache use
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, summary, middleware.ResponseMeta(c, start))
}

// Projection godoc
// @Summary Ad-hoc projection
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param attended query int true "Attended classes"
// @Param total query int true "Total classes"
// @Param target query int true "Target percent (1-99)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /projection [get]
func (h *DashboardHandler) Projection(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	var q dto.ProjectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid projection query"))
		return
	}
	if err := h.validator.Struct(q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid projection query"))
		return
	}

	summary := models.SubjectSummary{AttendedClasses: q.Attended, TotalClasses: q.Total}
	projection, err := service.Project(summary, q.Target)
	if err != nil {
		response.Error(c, err)
		return
	}
	percent := service.Percentage(summary)
	response.OK(c, ProjectionResponse{
		Attended: q.Attended,
		Total:    q.Total,
		Percent:  percent,
		Status:   string(service.StatusFor(percent, h.service.Thresholds())),
		Projection: dto.ProjectionView{
			Target:   projection.Target,
			Bunkable: projection.Bunkable,
			Needed:   projection.Needed,
		},
	})
}
