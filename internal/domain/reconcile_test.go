package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBodyUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ErrorBody
	}{
		{
			name: "array values",
			body: `{"message":"Validation failed","errors":{"city":["City is required","too short"]}}`,
			want: ErrorBody{Message: "Validation failed", Errors: map[string]FieldMessages{"city": {"City is required", "too short"}}},
		},
		{
			name: "bare string values",
			body: `{"errors":{"email":"Email is invalid"}}`,
			want: ErrorBody{Errors: map[string]FieldMessages{"email": {"Email is invalid"}}},
		},
		{
			name: "message only",
			body: `{"message":"profile is locked"}`,
			want: ErrorBody{Message: "profile is locked"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ErrorBody
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorBodyReconcile(t *testing.T) {
	b := ErrorBody{
		Message: "Validation failed",
		Errors: map[string]FieldMessages{
			"city":  {"City is required", "second message dropped"},
			"email": {"Email is invalid"},
			"state": {},
		},
	}
	v := b.Reconcile()
	assert.Equal(t, FieldErrors{
		"city":  "City is required",
		"email": "Email is invalid",
	}, v.Fields)
	assert.Equal(t, "Validation failed", v.Message)
}

func TestErrorBodyReconcile_MessageOnly(t *testing.T) {
	v := ErrorBody{Message: "profile is locked"}.Reconcile()
	assert.Empty(t, v.Fields)
	assert.Equal(t, "profile is locked", v.Message)
}
