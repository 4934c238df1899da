// Package editor implements the profile edit session: the view/edit state
// machine, its draft copy of the record, the tag-collection and skill
// editors, and submission of the full mutable field set.
package editor

import (
	"errors"
	"strconv"
	"strings"

	"github.com/quickhire/profile-engine/internal/domain"
)

// ErrUnknownField is returned when a mutation names a field the draft does
// not carry.
var ErrUnknownField = errors.New("unknown field")

// Scalar field names accepted by Session.SetField. They match the wire
// names of the update payload.
const (
	FieldFullName         = "full_name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldGender           = "gender"
	FieldCity             = "city"
	FieldState            = "state"
	FieldCurrentEmployer  = "current_employer"
	FieldTotalExperience  = "total_experience"
	FieldExpectedSalary   = "expected_ctc"
	FieldAvailabilityDate = "availability_date"
	FieldRelocation       = "relocation"
	FieldVisaStatus       = "visa_status"
	FieldJobSeekingStatus = "job_seeking_status"
	FieldAdditionalNotes  = "additional_notes"
)

// Toggle field names accepted by Session.SetToggle.
const (
	FieldVeteran           = "veteran"
	FieldDisability        = "disability"
	FieldWillingToRelocate = "willing_to_relocate"
)

// Tag-collection field names accepted by the collection editor.
const (
	FieldDesiredRoles        = "desired_roles"
	FieldPreferredIndustries = "preferred_industries"
	FieldEmploymentTypes     = "employment_types"
	FieldLanguages           = "languages"
	FieldPreferredLocations  = "preferred_locations"
)

// Draft is the working copy of the record while an edit session is open.
// Scalar fields are kept exactly as typed (strings), so nothing the user
// entered is lost or rejected before the service sees it.
type Draft struct {
	FullName         string
	Email            string
	Phone            string
	Gender           string
	City             string
	State            string
	CurrentEmployer  string
	TotalExperience  string
	ExpectedSalary   string
	AvailabilityDate string
	Relocation       string
	VisaStatus       string
	JobSeekingStatus string
	AdditionalNotes  string

	Veteran           bool
	Disability        bool
	WillingToRelocate bool

	DesiredRoles        []string
	PreferredIndustries []string
	EmploymentTypes     []string
	Languages           []string
	PreferredLocations  []string

	Skills []domain.Skill
}

// newDraft snapshots the canonical record into form shape.
func newDraft(p domain.Profile) *Draft {
	p = p.Clone()
	d := &Draft{
		FullName:         p.FullName,
		Email:            p.Email,
		Phone:            p.Phone,
		Gender:           p.Gender,
		City:             p.City,
		State:            p.State,
		CurrentEmployer:  p.CurrentEmployer,
		AvailabilityDate: p.AvailabilityDate,
		Relocation:       p.Relocation,
		VisaStatus:       p.VisaStatus,
		JobSeekingStatus: p.JobSeekingStatus,
		AdditionalNotes:  p.AdditionalNotes,

		Veteran:           p.Veteran,
		Disability:        p.Disability,
		WillingToRelocate: p.WillingToRelocate,

		DesiredRoles:        p.DesiredRoles,
		PreferredIndustries: p.PreferredIndustries,
		EmploymentTypes:     p.EmploymentTypes,
		Languages:           p.Languages,
		PreferredLocations:  p.PreferredLocations,

		Skills: p.Skills,
	}
	if p.TotalExperience != 0 {
		d.TotalExperience = strconv.Itoa(p.TotalExperience)
	}
	if p.ExpectedSalary != 0 {
		d.ExpectedSalary = strconv.FormatFloat(p.ExpectedSalary, 'f', -1, 64)
	}
	return d
}

// setScalar assigns a scalar field by name.
func (d *Draft) setScalar(name, value string) error {
	switch name {
	case FieldFullName:
		d.FullName = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldGender:
		d.Gender = value
	case FieldCity:
		d.City = value
	case FieldState:
		d.State = value
	case FieldCurrentEmployer:
		d.CurrentEmployer = value
	case FieldTotalExperience:
		d.TotalExperience = value
	case FieldExpectedSalary:
		d.ExpectedSalary = value
	case FieldAvailabilityDate:
		d.AvailabilityDate = value
	case FieldRelocation:
		d.Relocation = value
	case FieldVisaStatus:
		d.VisaStatus = value
	case FieldJobSeekingStatus:
		d.JobSeekingStatus = value
	case FieldAdditionalNotes:
		d.AdditionalNotes = value
	default:
		return ErrUnknownField
	}
	return nil
}

// setToggle assigns one of the demographic booleans by name.
func (d *Draft) setToggle(name string, value bool) error {
	switch name {
	case FieldVeteran:
		d.Veteran = value
	case FieldDisability:
		d.Disability = value
	case FieldWillingToRelocate:
		d.WillingToRelocate = value
	default:
		return ErrUnknownField
	}
	return nil
}

// tags returns a pointer to the named tag collection.
func (d *Draft) tags(name string) (*[]string, bool) {
	switch name {
	case FieldDesiredRoles:
		return &d.DesiredRoles, true
	case FieldPreferredIndustries:
		return &d.PreferredIndustries, true
	case FieldEmploymentTypes:
		return &d.EmploymentTypes, true
	case FieldLanguages:
		return &d.Languages, true
	case FieldPreferredLocations:
		return &d.PreferredLocations, true
	default:
		return nil, false
	}
}

// toUpdateRequest normalizes the draft for submission: skills are coerced
// to the canonical object shape with normalized experience, numeric fields
// are reduced to their parsed form when they parse, and empty optional
// fields travel as empty strings. Unparseable numerics are submitted as
// typed so the service can reject them with a field error.
func (d *Draft) toUpdateRequest() domain.UpdateRequest {
	skills := make([]domain.Skill, 0, len(d.Skills))
	for _, s := range d.Skills {
		skills = append(skills, domain.Skill{
			Name:       strings.TrimSpace(s.Name),
			Experience: domain.NormalizeExperience(s.Experience),
		})
	}
	return domain.UpdateRequest{
		FullName:         d.FullName,
		Email:            d.Email,
		Phone:            d.Phone,
		Gender:           d.Gender,
		City:             d.City,
		State:            d.State,
		CurrentEmployer:  d.CurrentEmployer,
		TotalExperience:  normalizeNumeric(d.TotalExperience),
		ExpectedSalary:   normalizeNumeric(d.ExpectedSalary),
		AvailabilityDate: strings.TrimSpace(d.AvailabilityDate),

		DesiredRoles:        d.DesiredRoles,
		PreferredIndustries: d.PreferredIndustries,
		EmploymentTypes:     d.EmploymentTypes,
		Languages:           d.Languages,
		PreferredLocations:  d.PreferredLocations,

		Skills: skills,

		Relocation:       d.Relocation,
		VisaStatus:       d.VisaStatus,
		JobSeekingStatus: d.JobSeekingStatus,

		Veteran:           d.Veteran,
		Disability:        d.Disability,
		WillingToRelocate: d.WillingToRelocate,

		AdditionalNotes: d.AdditionalNotes,
	}
}

// normalizeNumeric trims the input and, when it parses as a number, renders
// the parsed value back out. Anything else passes through as typed.
func normalizeNumeric(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}
