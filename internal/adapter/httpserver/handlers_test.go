package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/adapter/repo/memory"
	"github.com/quickhire/profile-engine/internal/config"
	"github.com/quickhire/profile-engine/internal/domain"
	"github.com/quickhire/profile-engine/internal/usecase"
)

func newTestServer(t *testing.T) (*Server, *memory.ProfileRepo) {
	t.Helper()
	repo := memory.NewProfileRepo()
	cfg := config.Config{AppEnv: "dev", JWTTTL: time.Hour, ResumeDir: t.TempDir()}
	srv := NewServer(cfg, usecase.NewProfileService(repo, nil), TokenIssuer{Secret: []byte("test"), TTL: time.Hour}, nil, nil)
	return srv, repo
}

func newTestRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Get("/files/*", s.ResumeHandler())
	return r
}

func authed(req *http.Request, subject string) *http.Request {
	return req.WithContext(ContextWithSubject(req.Context(), subject))
}

func TestShowHandler(t *testing.T) {
	srv, repo := newTestServer(t)
	require.NoError(t, repo.Put(context.Background(), "cand-1", domain.Profile{CandidateCode: "CAND-1", FullName: "Ada"}))

	req := authed(httptest.NewRequest(http.MethodGet, "/api/profile/show", nil), "cand-1")
	rec := httptest.NewRecorder()
	srv.ShowHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Profile domain.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ada", body.Profile.FullName)
}

func TestShowHandler_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/profile/show", nil), "cand-1")
	rec := httptest.NewRecorder()
	srv.ShowHandler()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateHandler_Success(t *testing.T) {
	srv, repo := newTestServer(t)

	payload := `{
		"full_name":"Ada Lovelace","email":"ada@example.com","phone":"+1 555 0100",
		"city":"Austin","state":"TX","total_experience":"7",
		"skills":[{"name":"Go","experience":"3 years"}]
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/profile/update", strings.NewReader(payload)), "cand-1")
	rec := httptest.NewRecorder()
	srv.UpdateHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Profile domain.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body.Profile.CandidateCode, "CAND-"))
	assert.Equal(t, 7, body.Profile.TotalExperience)

	stored, err := repo.Get(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "Austin", stored.City)
}

func TestUpdateHandler_ValidationEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := `{"full_name":"Ada","email":"bad","phone":"1","state":"TX","city":""}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/profile/update", strings.NewReader(payload)), "cand-1")
	rec := httptest.NewRecorder()
	srv.UpdateHandler()(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []string{"City is required"}, body.Errors["city"])
	assert.Equal(t, []string{"Email is invalid"}, body.Errors["email"])
}

func TestUpdateHandler_BadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/profile/update", strings.NewReader("{")), "cand-1")
	rec := httptest.NewRecorder()
	srv.UpdateHandler()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenHandler_DevModeOpenExchange(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"candidate_id":"cand-1"}`))
	rec := httptest.NewRecorder()
	srv.TokenHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)

	subject, err := srv.Tokens.Resolve(context.Background(), body.Token)
	require.NoError(t, err)
	assert.Equal(t, "cand-1", subject)
}

func TestTokenHandler_ServiceTokenRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	hash, err := HashToken("shared-secret", defaultArgon2Params)
	require.NoError(t, err)
	srv.Cfg.ServiceTokenHash = hash

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"candidate_id":"cand-1","service_token":"wrong"}`))
	rec := httptest.NewRecorder()
	srv.TokenHandler()(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"candidate_id":"cand-1","service_token":"shared-secret"}`))
	rec = httptest.NewRecorder()
	srv.TokenHandler()(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenHandler_ProdRejectsOpenExchange(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Cfg.AppEnv = "prod"

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"candidate_id":"cand-1"}`))
	rec := httptest.NewRecorder()
	srv.TokenHandler()(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadyHandler(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.DBCheck = func(context.Context) error { return nil }
	srv.RedisCheck = func(context.Context) error { return errors.New("dial tcp: refused") }

	rec := httptest.NewRecorder()
	srv.ReadyHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"db":"ok"`)
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.HealthHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResumeHandler(t *testing.T) {
	srv, _ := newTestServer(t)
	resumes := filepath.Join(srv.Cfg.ResumeDir, "resumes")
	require.NoError(t, os.MkdirAll(resumes, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resumes, "cand-01.pdf"), []byte("%PDF-1.4 test"), 0o644))

	r := newTestRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/files/resumes/cand-01.pdf", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/pdf")

	req = httptest.NewRequest(http.MethodGet, "/files/missing.pdf", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
