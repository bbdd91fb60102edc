package app

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/handler"
	"github.com/noah-isme/bunkerpal-api/internal/middleware"
	"github.com/noah-isme/bunkerpal-api/pkg/config"
	"github.com/noah-isme/bunkerpal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/bunkerpal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/bunkerpal-api/pkg/middleware/requestid"
)

// NewRouter mounts every HTTP route. Report routes answer FEATURE_DISABLED unless reports are enabled.
func NewRouter(cfg *config.Config, logr *zap.Logger, svcs Services, validate *validator.Validate, checks map[string]handler.Pinger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svcs.Metrics))

	ops := handler.NewMetricsHandler(svcs.Metrics, checks)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	authHandler := handler.NewAuthHandler(svcs.Auth, svcs.Session, logr)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	reports := handler.NewReportHandler(svcs.Reports)
	api.GET("/export/:token", middleware.RequireFeature("reports", cfg.Reports.Enabled), reports.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(svcs.Auth))
	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/session", handler.NewSessionHandler(svcs.Session).Establish)

	users := handler.NewUserHandler(svcs.Users)
	secured.GET("/me", users.Me)
	secured.PUT("/me", users.UpdateMe)
	secured.PUT("/me/password", users.ChangePassword)

	timetable := handler.NewTimetableHandler(svcs.Timetable)
	secured.GET("/timetable", timetable.Get)
	secured.PUT("/timetable", timetable.Save)
	secured.GET("/timetable/subjects", timetable.Subjects)

	attendance := handler.NewAttendanceHandler(svcs.Attendance, svcs.Recalculate)
	days := secured.Group("/attendance")
	days.GET("/days/:date", attendance.ResolveDay)
	days.PUT("/days/:date", attendance.SaveDay)
	days.POST("/days/:date/holiday", attendance.MarkHoliday)
	days.POST("/recalculate", attendance.Recalculate)
	secured.GET("/subjects", attendance.Subjects)

	dashboard := handler.NewDashboardHandler(svcs.Dashboard, validate)
	secured.GET("/dashboard", dashboard.Dashboard)
	secured.GET("/projection", dashboard.Projection)

	jobs := secured.Group("/reports", middleware.RequireFeature("reports", cfg.Reports.Enabled))
	jobs.POST("", reports.Create)
	jobs.GET("/:id", reports.Status)

	return r
}
