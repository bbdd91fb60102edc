package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/repository"
	"github.com/noah-isme/bunkerpal-api/internal/service"
	"github.com/noah-isme/bunkerpal-api/pkg/cache"
	"github.com/noah-isme/bunkerpal-api/pkg/config"
	"github.com/noah-isme/bunkerpal-api/pkg/database"
	"github.com/noah-isme/bunkerpal-api/pkg/jobs"
	"github.com/noah-isme/bunkerpal-api/pkg/storage"
)

const reportRetryDelay = 2 * time.Second

// Services groups every use case the transports call into.
type Services struct {
	Metrics     *service.MetricsService
	Cache       *service.CacheService
	Auth        *service.AuthService
	Users       *service.UserService
	Timetable   *service.TimetableService
	Recalculate *service.RecalculationService
	Attendance  *service.AttendanceService
	Dashboard   *service.DashboardService
	Session     *service.SessionService
	Export      *service.ExportService
	Reports     *service.ReportService
}

// App owns the process-wide connections and the wired services.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Validate *validator.Validate
	Services Services

	cacheRepo   *repository.CacheRepository
	reportQueue *jobs.Queue
}

// New connects to postgres (and redis when enabled), applies the schema and wires services.
// Report generation is only assembled when ENABLE_REPORTS is set.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// the dashboard recomputes on every request without a cache
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		client = nil
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    client,
		Validate: validator.New(),
	}
	if err := a.wire(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire() error {
	cfg := a.Config
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if a.Redis != nil {
		a.cacheRepo = repository.NewCacheRepository(a.Redis)
		cacheRepo = a.cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, a.Logger, a.Redis != nil)

	users := repository.NewUserRepository(a.DB)
	timetables := repository.NewTimetableRepository(a.DB)
	logs := repository.NewDailyLogRepository(a.DB)
	summaries := repository.NewSubjectSummaryRepository(a.DB)

	auth := service.NewAuthService(users, a.Validate, a.Logger, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
		SingleSession:      cfg.JWT.SingleSession,
	})
	timetable := service.NewTimetableService(timetables, a.Validate, a.Logger, service.TimetableConfig{
		MaxPeriods:     cfg.Timetable.MaxPeriods,
		DefaultPeriods: cfg.Timetable.DefaultPeriods,
	})
	recalc := service.NewRecalculationService(logs, summaries, cacheSvc, metrics, a.Logger)
	attendance := service.NewAttendanceService(logs, timetable, recalc, a.Validate, a.Logger, cfg.Timetable.MaxPeriods)
	dashboard := service.NewDashboardService(recalc, cacheSvc, service.Thresholds{
		Low:  cfg.Attendance.LowThreshold,
		Safe: cfg.Attendance.SafeThreshold,
	}, cfg.Dashboard.CacheTTL, a.Logger)
	session := service.NewSessionService(timetable, recalc, dashboard, a.Logger)

	a.Services = Services{
		Metrics:     metrics,
		Cache:       cacheSvc,
		Auth:        auth,
		Users:       service.NewUserService(users, a.Validate, a.Logger, 0),
		Timetable:   timetable,
		Recalculate: recalc,
		Attendance:  attendance,
		Dashboard:   dashboard,
		Session:     session,
	}

	if !cfg.Reports.Enabled {
		return nil
	}
	return a.wireReports(dashboard, metrics)
}

func (a *App) wireReports(dashboard *service.DashboardService, metrics *service.MetricsService) error {
	cfg := a.Config.Reports
	files, err := storage.NewLocal(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("report storage: %w", err)
	}
	signer := storage.NewSigner(cfg.SignedURLSecret, cfg.SignedURLTTL)
	exporter := service.NewExportService(dashboard, files, signer, service.ExportConfig{
		APIPrefix: a.Config.APIPrefix,
		ResultTTL: cfg.SignedURLTTL,
	}, a.Logger)

	reports := repository.NewReportRepository(a.DB)
	worker := service.NewReportWorker(reports, exporter, metrics, cfg.WorkerRetries, a.Logger)
	a.reportQueue = jobs.NewQueue("reports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		RetryDelay: reportRetryDelay,
		Logger:     a.Logger,
		OnGiveUp: func(job jobs.Job, err error) {
			a.Logger.Error("report job abandoned", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))
		},
	})

	a.Services.Export = exporter
	a.Services.Reports = service.NewReportService(reports, a.reportQueue, exporter, a.Validate, metrics, a.Logger, service.ReportServiceConfig{
		ResultTTL:       cfg.SignedURLTTL,
		CleanupInterval: cfg.CleanupInterval,
	})
	return nil
}

// StartBackground launches the report queue, requeues jobs left over from a previous run
// and starts the expiry sweep. It returns immediately; ctx cancellation stops the sweep.
func (a *App) StartBackground(ctx context.Context) {
	if a.reportQueue == nil {
		return
	}
	a.reportQueue.Start(ctx)
	if n := a.Services.Reports.RecoverPendingJobs(ctx); n > 0 {
		a.Logger.Info("requeued pending report jobs", zap.Int("count", n))
	}
	a.Services.Reports.StartCleanup(ctx)
}

// PingRedis reports redis reachability; a disabled cache always passes.
func (a *App) PingRedis(ctx context.Context) error {
	if a.cacheRepo == nil {
		return nil
	}
	return a.cacheRepo.Ping(ctx)
}

// Close stops the queue and releases connections.
func (a *App) Close() error {
	if a.reportQueue != nil {
		a.reportQueue.Stop()
	}
	if a.cacheRepo != nil {
		if err := a.cacheRepo.Close(); err != nil {
			a.Logger.Warn("failed to close redis", zap.Error(err))
		}
	} else if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
