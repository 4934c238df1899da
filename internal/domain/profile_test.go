package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExperience(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain years", "3 years", "3 year"},
		{"singular already", "1 year", "1 year"},
		{"defaulted blank", "0", "0 year"},
		{"digits only", "12", "12 year"},
		{"leading text", "about 5 yrs", "5 year"},
		{"leading zeros", "007", "7 year"},
		{"first run wins", "2-3 years", "2 year"},
		{"no digits", "senior", "senior"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExperience(tt.in))
		})
	}
}

func TestSkillUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Skill
	}{
		{"object shape", `{"name":"Go","experience":"3 years"}`, Skill{Name: "Go", Experience: "3 year"}},
		{"legacy bare string", `"Go"`, Skill{Name: "Go", Experience: "0 year"}},
		{"object without experience", `{"name":"SQL"}`, Skill{Name: "SQL", Experience: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Skill
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillUnmarshalJSON_Collection(t *testing.T) {
	var p Profile
	body := `{"full_name":"Ada","skills":["Go",{"name":"SQL","experience":"2 yrs"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	require.Len(t, p.Skills, 2)
	assert.Equal(t, Skill{Name: "Go", Experience: "0 year"}, p.Skills[0])
	assert.Equal(t, Skill{Name: "SQL", Experience: "2 year"}, p.Skills[1])
}

func TestProfileClone_Isolation(t *testing.T) {
	orig := Profile{
		FullName:     "Ada Lovelace",
		DesiredRoles: []string{"Backend Engineer"},
		Skills:       []Skill{{Name: "Go", Experience: "3 year"}},
		Education:    []Education{{Degree: "BSc", Institution: "UCL", Year: "2015"}},
	}
	cp := orig.Clone()
	cp.FullName = "Changed"
	cp.DesiredRoles[0] = "Changed"
	cp.Skills[0].Name = "Changed"
	cp.Education[0].Degree = "Changed"

	assert.Equal(t, "Ada Lovelace", orig.FullName)
	assert.Equal(t, "Backend Engineer", orig.DesiredRoles[0])
	assert.Equal(t, "Go", orig.Skills[0].Name)
	assert.Equal(t, "BSc", orig.Education[0].Degree)
}

func TestProfileHasSkill(t *testing.T) {
	p := Profile{Skills: []Skill{{Name: "Go", Experience: "3 year"}}}
	assert.True(t, p.HasSkill("Go"))
	assert.False(t, p.HasSkill("go"), "match is case-sensitive")
	assert.False(t, p.HasSkill("Rust"))
}

func TestValidationError_Unwrap(t *testing.T) {
	err := &ValidationError{Message: "bad input", Fields: FieldErrors{"city": "City is required"}}
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "city")

	topLevel := &ValidationError{Message: "something went wrong"}
	assert.Contains(t, topLevel.Error(), "something went wrong")
}
