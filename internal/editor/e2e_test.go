package editor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/adapter/profileapi"
	"github.com/quickhire/profile-engine/internal/adapter/session"
	"github.com/quickhire/profile-engine/internal/domain"
	"github.com/quickhire/profile-engine/internal/editor"
	"github.com/quickhire/profile-engine/internal/profile"
)

// These tests run the whole engine — store, session, editors — against a
// real HTTP client talking to a scripted service.

func TestEndToEnd_ValidationFailureKeepsEditing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/profile/show":
			_, _ = w.Write([]byte(`{"profile":{"candidate_code":"CAND-1","full_name":"Ada Lovelace","city":"Austin","state":"TX"}}`))
		case "/api/profile/update":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors":{"city":["City is required"]}}`))
		}
	}))
	t.Cleanup(srv.Close)

	sc := profileapi.New(srv.URL, session.Static("tok"), 5*time.Second)
	st := profile.NewStore(sc)
	require.NoError(t, st.Load(context.Background()))

	s := editor.NewSession(st, sc)
	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(editor.FieldCity, ""))
	require.NoError(t, s.SetField(editor.FieldCurrentEmployer, "Initech"))

	err := s.Save(context.Background())
	require.Error(t, err)

	assert.Equal(t, editor.Editing, s.State())
	assert.Equal(t, "City is required", s.FieldError("city"))
	assert.Equal(t, "Initech", s.Draft().CurrentEmployer, "other edits survive")

	// save stays available for manual retry
	assert.NotErrorIs(t, s.Save(context.Background()), domain.ErrSaveInFlight)
}

func TestEndToEnd_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	sc := profileapi.New(srv.URL, session.Static("tok"), 5*time.Second)
	st := profile.NewStore(sc)

	err := st.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound, "routes to create-profile, not a generic error")
	_, loaded := st.Current()
	assert.False(t, loaded)
}

func TestEndToEnd_SaveSuccessRoundTrip(t *testing.T) {
	var received domain.UpdateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/profile/show":
			_, _ = w.Write([]byte(`{"profile":{"candidate_code":"CAND-1","full_name":"Ada Lovelace","skills":[{"name":"Go","experience":"3 year"}]}}`))
		case "/api/profile/update":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			resp := map[string]any{"profile": map[string]any{
				"candidate_code": "CAND-1",
				"full_name":      received.FullName,
				"city":           received.City,
				"skills":         received.Skills,
				"score_notes":    "auto-screened",
			}}
			_ = json.NewEncoder(w).Encode(resp)
		}
	}))
	t.Cleanup(srv.Close)

	sc := profileapi.New(srv.URL, session.Static("tok"), 5*time.Second)
	st := profile.NewStore(sc)
	require.NoError(t, st.Load(context.Background()))

	var completeness []int
	st.Subscribe(func(p domain.Profile) { completeness = append(completeness, profile.Completeness(p)) })

	s := editor.NewSession(st, sc)
	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(editor.FieldCity, "Dallas"))
	s.Skills().StartAdd()
	s.Skills().SetName("Terraform")
	s.Skills().SetExperience("2 years")
	require.True(t, s.Skills().CommitAdd())

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, editor.Viewing, s.State())

	rec, _ := st.Current()
	assert.Equal(t, "Dallas", rec.City)
	assert.Equal(t, "auto-screened", rec.ScoreNotes, "store equals the server record, not a draft merge")
	assert.Contains(t, rec.Skills, domain.Skill{Name: "Terraform", Experience: "2 year"})

	require.Len(t, completeness, 2, "subscriber sees the initial record and the replacement")
	assert.GreaterOrEqual(t, completeness[1], completeness[0])
}
