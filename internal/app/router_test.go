package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/handler"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	"github.com/noah-isme/bunkerpal-api/internal/service"
	"github.com/noah-isme/bunkerpal-api/pkg/config"
)

const testSecret = "router-secret"

func testRouter(t *testing.T, mutate func(*config.Config), checks map[string]handler.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api/v1"}
	if mutate != nil {
		mutate(cfg)
	}
	svcs := Services{
		Metrics:   service.NewMetricsService(),
		Auth:      service.NewAuthService(nil, nil, nil, service.AuthConfig{AccessTokenSecret: testSecret}),
		Dashboard: service.NewDashboardService(nil, nil, service.DefaultThresholds, time.Minute, nil),
	}
	return NewRouter(cfg, zap.NewNop(), svcs, nil, checks)
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	claims := models.JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRouterProtectsAttendanceRoutes(t *testing.T) {
	r := testRouter(t, nil, nil)

	for _, path := range []string{"/api/v1/dashboard", "/api/v1/timetable", "/api/v1/attendance/days/2024-03-04", "/api/v1/subjects"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w), path)
	}
}

func TestRouterProjectionWithToken(t *testing.T) {
	r := testRouter(t, nil, nil)

	w := serve(r, http.MethodGet, "/api/v1/projection?attended=18&total=20&target=75", bearer(t, "u1"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data handler.ProjectionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 90, body.Data.Percent)
	assert.Equal(t, "on_track", body.Data.Status)
	assert.Equal(t, 4, body.Data.Projection.Bunkable)
}

func TestRouterRejectsForeignToken(t *testing.T) {
	r := testRouter(t, nil, nil)

	claims := models.JWTClaims{UserID: "u1"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/api/v1/projection?attended=1&total=2&target=75", "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterReportsDisabled(t *testing.T) {
	r := testRouter(t, nil, nil)

	w := serve(r, http.MethodGet, "/api/v1/reports/abc", bearer(t, "u1"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "FEATURE_DISABLED", errorCode(t, w))

	w = serve(r, http.MethodGet, "/api/v1/export/token", "")
	assert.Equal(t, "FEATURE_DISABLED", errorCode(t, w))
}

func TestRouterReadyReportsDegradedDependency(t *testing.T) {
	checks := map[string]handler.Pinger{
		"postgres": handler.PingFunc(func(context.Context) error { return nil }),
		"redis":    handler.PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}
	r := testRouter(t, nil, checks)

	w := serve(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestRouterHonoursPrefixAndHidesDocsInProduction(t *testing.T) {
	r := testRouter(t, func(cfg *config.Config) {
		cfg.Env = config.EnvProduction
		cfg.APIPrefix = "/v2"
	}, nil)
	defer gin.SetMode(gin.TestMode)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/docs/index.html", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/v2/dashboard", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", "").Code)
}
