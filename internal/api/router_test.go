package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/solarmatch/internal/api/handler"
	"github.com/timmy/solarmatch/internal/api/middleware"
	"github.com/timmy/solarmatch/internal/config"
	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/repository"
	"github.com/timmy/solarmatch/internal/service"
)

const kmPerDegree = 111.19492664455873

func ptr[T any](v T) *T { return &v }

type testServer struct {
	router  http.Handler
	jobs    *repository.JobRepository
	pros    *repository.ProfessionalRepository
	matches *repository.MatchRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := repository.InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := &testServer{
		jobs:    repository.NewJobRepository(db),
		pros:    repository.NewProfessionalRepository(db),
		matches: repository.NewMatchRepository(db),
	}
	svc := service.NewMatchService(s.jobs, s.pros, s.matches, nil, nil, &service.MatchServiceConfig{Workers: 4})

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test", CORS: config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	s.router = SetupRouter(cfg, Dependencies{
		Matches:      svc,
		Rematcher:    svc,
		HealthChecks: map[string]handler.HealthCheck{"database": sqlDB.PingContext},
	})
	return s
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seed(t *testing.T) *domain.Job {
	t.Helper()
	ctx := context.Background()

	job := &domain.Job{
		JobType:   domain.JobTypeInstallation,
		Title:     "Roof array",
		Status:    domain.JobStatusPending,
		BudgetMax: ptr(2000.0),
	}
	require.NoError(t, s.jobs.CreateJob(ctx, job))

	for i, km := range []float64{5, 30, 500} {
		pro := &domain.Professional{
			CompanyName:        fmt.Sprintf("Installer %d", i),
			Email:              fmt.Sprintf("pro%d@example.com", i),
			Latitude:           ptr(km / kmPerDegree),
			Longitude:          ptr(0.0),
			ServiceRadiusKm:    50,
			HourlyRate:         ptr(50.0),
			Rating:             4.5,
			TotalJobsCompleted: 20,
			IsVerified:         i < 2,
			Expertise: []domain.ExpertiseEntry{
				{ExpertiseType: "PANEL_INSTALLATION", YearsExperience: ptr(5), CertificationName: "NABCEP"},
			},
		}
		require.NoError(t, s.pros.CreateProfessional(ctx, pro))
	}
	return job
}

type listBody struct {
	Matches []service.MatchResult `json:"matches"`
	Total   int                   `json:"total"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listBody {
	t.Helper()
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestMatchLifecycle(t *testing.T) {
	s := newTestServer(t)
	job := s.seed(t)

	w := s.do(http.MethodPost, "/api/v1/matches/find", fmt.Sprintf(`{"job_id": %d}`, job.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	found := decodeList(t, w)
	require.Equal(t, 2, found.Total)
	assert.Equal(t, "Installer 0", found.Matches[0].CompanyName)
	assert.Greater(t, found.Matches[0].Score.TotalScore, found.Matches[1].Score.TotalScore)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	stored, err := s.jobs.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusMatched, stored.Status)

	// A second run finds nothing new.
	w = s.do(http.MethodPost, "/api/v1/matches/find", fmt.Sprintf(`{"job_id": %d}`, job.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeList(t, w).Total)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/matches/job/%d", job.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeList(t, w)
	require.Equal(t, 2, listed.Total)
	assert.Equal(t, found.Matches[0].MatchID, listed.Matches[0].MatchID)

	proID := found.Matches[0].ProfessionalID
	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/matches/professional/%d", proID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeList(t, w).Total)

	matchID := found.Matches[0].MatchID
	w = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/matches/%d/status?status=ACCEPTED", matchID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated service.MatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, domain.MatchStatusAccepted, updated.Status)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/api/v1/matches/%d", matchID), "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, fmt.Sprintf("/api/v1/matches/%d", matchID), "").Code)
}

func TestFindMatchesErrors(t *testing.T) {
	s := newTestServer(t)
	job := s.seed(t)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/v1/matches/find", `{"job_id": 999}`).Code)

	w := s.do(http.MethodPost, "/api/v1/matches/find", fmt.Sprintf(`{"job_id": %d, "distance_weight": -1}`, job.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, s.jobs.SetJobStatus(context.Background(), job.ID, domain.JobStatusCancelled))
	w = s.do(http.MethodPost, "/api/v1/matches/find", fmt.Sprintf(`{"job_id": %d}`, job.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "dependencies": {"database": "ok"}}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "solarmatch_candidates_scored_total")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/matches/find", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPropagates(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}
