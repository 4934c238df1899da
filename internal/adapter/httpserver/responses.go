// Package httpserver contains the Profile Service HTTP handlers and
// middleware. It keeps HTTP concerns (status mapping, envelopes, auth
// headers) out of the application logic.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quickhire/profile-engine/internal/domain"
)

// errorBody is the error envelope. Errors is present only for validation
// failures; each field maps to its messages in form order.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make(map[string][]string, len(vErr.Fields))
		for name, msg := range vErr.Fields {
			fields[name] = []string{msg}
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Message: vErr.Message, Errors: fields})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorBody{Message: err.Error()})
}
