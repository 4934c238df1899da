// Package domain holds the candidate profile entity, its normalization
// rules, the error taxonomy, and the ports implemented by adapters.
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error taxonomy (sentinels)
var (
	ErrNotFound     = errors.New("profile not found")
	ErrUnauthorized = errors.New("session expired")
	ErrNetwork      = errors.New("network failure")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrSaveInFlight = errors.New("save already in flight")
	ErrInternal     = errors.New("internal error")
)

// Relocation willingness choices.
const (
	RelocateBySelf         = "by_self"
	RelocateIfEmployerPays = "if_employer_covers"
	RelocateNotWilling     = "not_willing"
)

// Skill is a single entry of the skill collection. Experience is stored
// normalized as "<N> year" (singular unit regardless of N) once it crosses
// the system boundary.
type Skill struct {
	Name       string `json:"name"`
	Experience string `json:"experience"`
}

// UnmarshalJSON accepts both the canonical object shape and the legacy
// bare-string shape ("Go" instead of {"name":"Go"}), so internal logic
// never branches on shape again.
func (s *Skill) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		s.Name = name
		s.Experience = NormalizeExperience("0")
		return nil
	}
	type alias Skill
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	s.Name = a.Name
	s.Experience = NormalizeExperience(a.Experience)
	return nil
}

// NormalizeExperience extracts the first run of digits from free-text input
// and returns the literal string "<N> year". The unit is singular for every
// N; the upstream service stores and compares the singular form, so it is
// kept verbatim. Input without any digits is returned unchanged.
func NormalizeExperience(raw string) string {
	start := -1
	end := -1
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
			continue
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return raw
	}
	n, err := strconv.Atoi(raw[start:end])
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%d year", n)
}

// Education is a read-only structured sub-record.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Grade       string `json:"grade,omitempty"`
}

// Certification is a read-only structured sub-record.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// JobHistoryEntry is a read-only structured sub-record.
type JobHistoryEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Description string `json:"description,omitempty"`
}

// Reference is a read-only structured sub-record.
type Reference struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Relation string `json:"relation,omitempty"`
}

// ResumeRef points at the stored resume file; it is downloaded, never edited.
type ResumeRef struct {
	FilePath string `json:"file_path,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// Profile is the canonical candidate record.
//
// CandidateCode is assigned server-side on first save and never mutated by
// this engine. ScoreNotes is server-authored and read-only. The demographic
// booleans are tri-state in meaning (unset/true/false) but carried as plain
// bools; see the completeness notes in DESIGN.md.
type Profile struct {
	CandidateCode string `json:"candidate_code,omitempty"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender,omitempty"`

	City             string  `json:"city"`
	State            string  `json:"state"`
	CurrentEmployer  string  `json:"current_employer,omitempty"`
	TotalExperience  int     `json:"total_experience"`
	ExpectedSalary   float64 `json:"expected_ctc,omitempty"`
	AvailabilityDate string  `json:"availability_date,omitempty"`

	DesiredRoles        []string `json:"desired_roles,omitempty"`
	PreferredIndustries []string `json:"preferred_industries,omitempty"`
	EmploymentTypes     []string `json:"employment_types,omitempty"`
	Languages           []string `json:"languages,omitempty"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`

	Skills []Skill `json:"skills,omitempty"`

	Relocation       string `json:"relocation,omitempty"`
	VisaStatus       string `json:"visa_status,omitempty"`
	JobSeekingStatus string `json:"job_seeking_status,omitempty"`

	Education      []Education       `json:"education,omitempty"`
	Certifications []Certification   `json:"certifications,omitempty"`
	JobHistory     []JobHistoryEntry `json:"job_history,omitempty"`
	References     []Reference       `json:"references,omitempty"`

	Veteran           bool `json:"veteran,omitempty"`
	Disability        bool `json:"disability,omitempty"`
	WillingToRelocate bool `json:"willing_to_relocate,omitempty"`

	AdditionalNotes string `json:"additional_notes,omitempty"`
	ScoreNotes      string `json:"score_notes,omitempty"`

	Resume ResumeRef `json:"resume,omitempty"`
}

// Clone returns a deep copy of the profile. Edit sessions mutate the clone
// only; the stored record must stay untouched until a successful save
// replaces it wholesale.
func (p Profile) Clone() Profile {
	out := p
	out.DesiredRoles = cloneStrings(p.DesiredRoles)
	out.PreferredIndustries = cloneStrings(p.PreferredIndustries)
	out.EmploymentTypes = cloneStrings(p.EmploymentTypes)
	out.Languages = cloneStrings(p.Languages)
	out.PreferredLocations = cloneStrings(p.PreferredLocations)
	if p.Skills != nil {
		out.Skills = append([]Skill(nil), p.Skills...)
	}
	if p.Education != nil {
		out.Education = append([]Education(nil), p.Education...)
	}
	if p.Certifications != nil {
		out.Certifications = append([]Certification(nil), p.Certifications...)
	}
	if p.JobHistory != nil {
		out.JobHistory = append([]JobHistoryEntry(nil), p.JobHistory...)
	}
	if p.References != nil {
		out.References = append([]Reference(nil), p.References...)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// HasSkill reports whether a skill with the given name already exists
// (exact, case-sensitive match).
func (p Profile) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s.Name == name {
			return true
		}
	}
	return false
}

// FieldErrors maps a field name to a single human-readable message, sourced
// from server validation responses (first message wins for array values).
type FieldErrors map[string]string

// ValidationError carries the reconciled server validation failure. Fields
// is empty when the server returned only a top-level message.
type ValidationError struct {
	Message string
	Fields  FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validation failed on %s", strings.Join(keys, ", "))
}

// Unwrap makes errors.Is(err, ErrValidation) hold for reconciled failures.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// UpdateRequest is the full mutable field set submitted on every save.
// Scalar fields typed into a form travel as strings; the service parses and
// validates them so the engine never rejects what the user typed.
type UpdateRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender,omitempty"`

	City             string `json:"city"`
	State            string `json:"state"`
	CurrentEmployer  string `json:"current_employer,omitempty"`
	TotalExperience  string `json:"total_experience,omitempty"`
	ExpectedSalary   string `json:"expected_ctc,omitempty"`
	AvailabilityDate string `json:"availability_date,omitempty"`

	DesiredRoles        []string `json:"desired_roles,omitempty"`
	PreferredIndustries []string `json:"preferred_industries,omitempty"`
	EmploymentTypes     []string `json:"employment_types,omitempty"`
	Languages           []string `json:"languages,omitempty"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`

	Skills []Skill `json:"skills"`

	Relocation       string `json:"relocation,omitempty"`
	VisaStatus       string `json:"visa_status,omitempty"`
	JobSeekingStatus string `json:"job_seeking_status,omitempty"`

	Veteran           bool `json:"veteran"`
	Disability        bool `json:"disability"`
	WillingToRelocate bool `json:"willing_to_relocate"`

	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// Context aliases context.Context so ports read naturally in this package.
type Context = context.Context

// SyncClient is the port to the external Profile Service. Update always
// carries the full mutable field set; there is no partial patch and no
// optimistic concurrency token, so the last writer wins (known limitation).
type SyncClient interface {
	Fetch(ctx Context) (Profile, error)
	Update(ctx Context, req UpdateRequest) (Profile, error)
	DownloadResume(ctx Context, ref ResumeRef) ([]byte, string, error)
}

// TokenSource supplies the bearer token for Profile Service calls. It is
// injected explicitly; nothing in the engine reads ambient global state.
type TokenSource interface {
	Token(ctx Context) (string, error)
}
