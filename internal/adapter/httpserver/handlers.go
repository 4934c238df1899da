package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/quickhire/profile-engine/internal/adapter/observability"
	"github.com/quickhire/profile-engine/internal/config"
	"github.com/quickhire/profile-engine/internal/domain"
	"github.com/quickhire/profile-engine/internal/profile"
	"github.com/quickhire/profile-engine/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Profiles   usecase.ProfileService
	Tokens     TokenIssuer
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs a Server with all handlers and checks wired.
func NewServer(cfg config.Config, profiles usecase.ProfileService, tokens TokenIssuer, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Profiles: profiles, Tokens: tokens, DBCheck: dbCheck, RedisCheck: redisCheck}
}

// profileEnvelope wraps a record for the wire. The client unwraps the same
// envelope on both show and update.
type profileEnvelope struct {
	Profile domain.Profile `json:"profile"`
}

// ShowHandler returns the caller's full record.
func (s *Server) ShowHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := SubjectFrom(r.Context())
		p, err := s.Profiles.Show(r.Context(), subject)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profileEnvelope{Profile: p})
	}
}

// UpdateHandler validates and applies a full-record update.
func (s *Server) UpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "request body is not valid JSON"})
			return
		}
		subject := SubjectFrom(r.Context())
		p, err := s.Profiles.Update(r.Context(), subject, req)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				observability.RecordSaveRejection("validation")
			}
			writeError(w, r, err)
			return
		}
		observability.RecordSave(profile.Completeness(p))
		writeJSON(w, http.StatusOK, profileEnvelope{Profile: p})
	}
}

// tokenRequest is the body of POST /api/auth/token.
type tokenRequest struct {
	CandidateID  string `json:"candidate_id"`
	ServiceToken string `json:"service_token"`
}

// TokenHandler exchanges the shared service token for a candidate-scoped
// bearer token. With no hash configured the exchange is open, dev only.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "request body is not valid JSON"})
			return
		}
		if req.CandidateID == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "candidate_id is required"})
			return
		}
		if s.Cfg.ServiceTokenHash != "" {
			if !VerifyToken(req.ServiceToken, s.Cfg.ServiceTokenHash) {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
		} else if !s.Cfg.IsDev() {
			writeError(w, r, domain.ErrUnauthorized)
			return
		}
		token, err := s.Tokens.Issue(r.Context(), req.CandidateID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		observability.RecordSessionIssued()
		writeJSON(w, http.StatusOK, map[string]any{
			"token":      token,
			"expires_in": int(s.Cfg.JWTTTL / time.Second),
		})
	}
}

// ResumeHandler serves stored resume files under /files/. The wildcard is
// resolved strictly inside ResumeDir.
func (s *Server) ResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := chi.URLParam(r, "*")
		clean := path.Clean("/" + rel)
		if strings.Contains(clean, "..") {
			writeError(w, r, domain.ErrNotFound)
			return
		}
		full := filepath.Join(s.Cfg.ResumeDir, filepath.FromSlash(clean))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			writeError(w, r, domain.ErrNotFound)
			return
		}
		if mt, err := mimetype.DetectFile(full); err == nil {
			w.Header().Set("Content-Type", mt.String())
		}
		http.ServeFile(w, r, full)
	}
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyHandler reports readiness of the backing stores.
func (s *Server) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := map[string]string{}
		ready := true
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks["db"] = err.Error()
				ready = false
			} else {
				checks["db"] = "ok"
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks["redis"] = err.Error()
				ready = false
			} else {
				checks["redis"] = "ok"
			}
		}
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"ready": ready, "checks": checks})
	}
}
