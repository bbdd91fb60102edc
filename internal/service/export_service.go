package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	"github.com/noah-isme/bunkerpal-api/pkg/export"
	"github.com/noah-isme/bunkerpal-api/pkg/storage"
)

type fileStore interface {
	Save(name string, data []byte) error
	Open(name string) (*os.File, error)
	Delete(name string) error
	Sweep(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService renders a user's dashboard to a file and signs a download link for it.
type ExportService struct {
	dashboard dashboardBuilder
	storage   fileStore
	signer    *storage.Signer
	renderers map[models.ReportFormat]export.Renderer
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

var exportColumns = []export.Column{
	{Key: "subject", Title: "Subject"},
	{Key: "attended", Title: "Attended"},
	{Key: "total", Title: "Total"},
	{Key: "percent", Title: "Attendance (%)"},
	{Key: "status", Title: "Status"},
	{Key: "advice", Title: "Advice"},
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(dashboard dashboardBuilder, files fileStore, signer *storage.Signer, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		dashboard: dashboard,
		storage:   files,
		signer:    signer,
		renderers: map[models.ReportFormat]export.Renderer{
			models.ReportFormatCSV: export.CSV{},
			models.ReportFormatPDF: export.PDF{Highlight: statusColour},
		},
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Generate renders the job owner's current dashboard and stores it.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	renderer, ok := s.renderers[job.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %s", job.Format)
	}

	dash, _, err := s.dashboard.Dashboard(ctx, job.UserID)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(BuildExportTable(dash))
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s/attendance_%s_%s.%s", job.UserID, s.now().UTC().Format("20060102_150405"), job.ID, renderer.Extension())
	if err := s.storage.Save(name, payload); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Sign(job.ID, name)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Debug("export stored", zap.String("job_id", job.ID), zap.String("path", name), zap.Int("bytes", len(payload)))
	return &ExportResult{
		RelativePath: name,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       job.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ContentType maps a format to its MIME type.
func (s *ExportService) ContentType(format models.ReportFormat) string {
	if r, ok := s.renderers[format]; ok {
		return r.ContentType()
	}
	return "application/octet-stream"
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (*storage.DownloadClaims, error) {
	return s.signer.Verify(token, allowExpired)
}

func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl, or the configured result TTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.Sweep(ttl)
}

// BuildExportTable flattens a dashboard into one row per subject plus an overall row.
func BuildExportTable(dash *dto.DashboardResponse) export.Table {
	table := export.Table{
		Title:   fmt.Sprintf("Attendance report (%s)", dash.GeneratedAt.UTC().Format("2006-01-02")),
		Columns: exportColumns,
		Rows:    make([]map[string]string, 0, len(dash.Subjects)+1),
	}
	for _, sub := range dash.Subjects {
		table.Rows = append(table.Rows, map[string]string{
			"subject":  sub.Name,
			"attended": strconv.Itoa(sub.Attended),
			"total":    strconv.Itoa(sub.Total),
			"percent":  strconv.Itoa(sub.Percent),
			"status":   sub.Status,
			"advice":   describeAdvice(sub.Advice),
		})
	}
	table.Rows = append(table.Rows, map[string]string{
		"subject":  "Overall",
		"attended": strconv.Itoa(dash.Attended),
		"total":    strconv.Itoa(dash.Total),
		"percent":  strconv.Itoa(dash.Percent),
	})
	return table
}

func describeAdvice(advice []dto.Advice) string {
	parts := make([]string, 0, len(advice))
	for _, a := range advice {
		switch a.Action {
		case dto.AdviceMaySkip:
			parts = append(parts, fmt.Sprintf("may skip %d (stays >= %d%%)", a.Classes, a.Target))
		case dto.AdviceMustAttend:
			parts = append(parts, fmt.Sprintf("attend %d to reach %d%%", a.Classes, a.Target))
		}
	}
	return strings.Join(parts, "; ")
}

func statusColour(row map[string]string) (int, int, int, bool) {
	switch Status(row["status"]) {
	case StatusCritical:
		return 248, 215, 218, true
	case StatusLow:
		return 255, 243, 205, true
	default:
		return 0, 0, 0, false
	}
}
