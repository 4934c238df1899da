// Package usecase holds the reference Profile Service's application logic:
// validation of incoming updates and the replace-on-save persistence flow.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/quickhire/profile-engine/internal/domain"
)

// ProfileService serves show/update for the authenticated candidate. Every
// update replaces the full mutable field set; server-owned sections
// (candidate code, score notes, structured history, resume reference) are
// carried over from the stored record untouched.
type ProfileService struct {
	Repo   domain.ProfileRepository
	Events domain.EventPublisher // optional
}

// NewProfileService constructs a ProfileService.
func NewProfileService(repo domain.ProfileRepository, events domain.EventPublisher) ProfileService {
	return ProfileService{Repo: repo, Events: events}
}

// Show loads the caller's record.
func (s ProfileService) Show(ctx domain.Context, subject string) (domain.Profile, error) {
	return s.Repo.Get(ctx, subject)
}

// Update validates and applies a full-record update. The first save creates
// the record and assigns its candidate code; later saves never change the
// code. There is no version check: the last writer wins.
func (s ProfileService) Update(ctx domain.Context, subject string, req domain.UpdateRequest) (domain.Profile, error) {
	parsed, vErr := validateUpdate(req)
	if vErr != nil {
		return domain.Profile{}, vErr
	}

	existing, err := s.Repo.Get(ctx, subject)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, fmt.Errorf("op=profile.update load: %w", err)
	}

	rec := applyUpdate(existing, req, parsed)
	if rec.CandidateCode == "" {
		rec.CandidateCode = "CAND-" + ulid.Make().String()
	}
	if err := s.Repo.Put(ctx, subject, rec); err != nil {
		return domain.Profile{}, fmt.Errorf("op=profile.update store: %w", err)
	}

	if s.Events != nil {
		if err := s.Events.PublishProfileUpdated(ctx, rec); err != nil {
			// the save already succeeded; collaborators catch up on next fetch
			slog.Warn("profile.updated publish failed", slog.Any("error", err))
		}
	}
	return rec, nil
}

// parsedNumerics carries the typed values recovered from the form strings.
type parsedNumerics struct {
	TotalExperience int
	ExpectedSalary  float64
}

// updateValidation is the shape go-playground/validator checks. Numerics
// are validated after parsing so "not a number" and range failures produce
// distinct messages.
type updateValidation struct {
	FullName         string   `json:"full_name" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone" validate:"required"`
	City             string   `json:"city" validate:"required"`
	State            string   `json:"state" validate:"required"`
	TotalExperience  *int     `json:"total_experience" validate:"omitempty,gte=0,lte=60"`
	ExpectedSalary   *float64 `json:"expected_ctc" validate:"omitempty,gte=0"`
	AvailabilityDate string   `json:"availability_date" validate:"omitempty,datetime=2006-01-02"`
	Relocation       string   `json:"relocation" validate:"omitempty,oneof=by_self if_employer_covers not_willing"`
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New()
		vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// validateUpdate checks the request and returns the parsed numerics, or a
// ValidationError carrying one message per offending field.
func validateUpdate(req domain.UpdateRequest) (parsedNumerics, *domain.ValidationError) {
	fields := domain.FieldErrors{}
	var parsed parsedNumerics

	v := updateValidation{
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		City:             strings.TrimSpace(req.City),
		State:            strings.TrimSpace(req.State),
		AvailabilityDate: strings.TrimSpace(req.AvailabilityDate),
		Relocation:       req.Relocation,
	}

	if raw := strings.TrimSpace(req.TotalExperience); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			v.TotalExperience = &n
			parsed.TotalExperience = n
		} else {
			fields["total_experience"] = "Total experience must be a whole number"
		}
	}
	if raw := strings.TrimSpace(req.ExpectedSalary); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			v.ExpectedSalary = &f
			parsed.ExpectedSalary = f
		} else {
			fields["expected_ctc"] = "Expected package must be a number"
		}
	}
	for _, sk := range req.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			fields["skills"] = "Skill names cannot be empty"
			break
		}
	}

	if err := getValidator().Struct(v); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range ves {
				if _, taken := fields[ve.Field()]; !taken {
					fields[ve.Field()] = messageFor(ve)
				}
			}
		} else {
			fields["_"] = "request could not be validated"
		}
	}

	if len(fields) > 0 {
		return parsedNumerics{}, &domain.ValidationError{Message: "Validation failed", Fields: fields}
	}
	return parsed, nil
}

// messageFor renders a human message for a failed rule.
func messageFor(ve validator.FieldError) string {
	switch ve.Field() {
	case "full_name":
		return "Full name is required"
	case "email":
		if ve.Tag() == "required" {
			return "Email is required"
		}
		return "Email is invalid"
	case "phone":
		return "Phone is required"
	case "city":
		return "City is required"
	case "state":
		return "State is required"
	case "total_experience":
		return "Total experience must be between 0 and 60"
	case "expected_ctc":
		return "Expected package must be 0 or more"
	case "availability_date":
		return "Availability date must be YYYY-MM-DD"
	case "relocation":
		return "Relocation choice is not recognized"
	default:
		return fmt.Sprintf("%s is invalid", ve.Field())
	}
}

// applyUpdate merges the validated request onto the stored record,
// preserving every server-owned section.
func applyUpdate(existing domain.Profile, req domain.UpdateRequest, parsed parsedNumerics) domain.Profile {
	rec := existing.Clone()

	rec.FullName = strings.TrimSpace(req.FullName)
	rec.Email = strings.TrimSpace(req.Email)
	rec.Phone = strings.TrimSpace(req.Phone)
	rec.Gender = strings.TrimSpace(req.Gender)
	rec.City = strings.TrimSpace(req.City)
	rec.State = strings.TrimSpace(req.State)
	rec.CurrentEmployer = strings.TrimSpace(req.CurrentEmployer)
	rec.TotalExperience = parsed.TotalExperience
	rec.ExpectedSalary = parsed.ExpectedSalary
	rec.AvailabilityDate = strings.TrimSpace(req.AvailabilityDate)

	rec.DesiredRoles = cleanTags(req.DesiredRoles)
	rec.PreferredIndustries = cleanTags(req.PreferredIndustries)
	rec.EmploymentTypes = cleanTags(req.EmploymentTypes)
	rec.Languages = cleanTags(req.Languages)
	rec.PreferredLocations = cleanTags(req.PreferredLocations)

	rec.Skills = cleanSkills(req.Skills)

	rec.Relocation = req.Relocation
	rec.VisaStatus = strings.TrimSpace(req.VisaStatus)
	rec.JobSeekingStatus = strings.TrimSpace(req.JobSeekingStatus)

	rec.Veteran = req.Veteran
	rec.Disability = req.Disability
	rec.WillingToRelocate = req.WillingToRelocate

	rec.AdditionalNotes = cleanNotes(req.AdditionalNotes)
	return rec
}

// cleanNotes strips control characters from the free-text notes, keeping
// tab and line breaks, and trims the result. Notes are the only field that
// accepts multi-line paste from recruiter tooling, which is where stray
// control bytes come from.
func cleanNotes(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// cleanTags trims entries and drops empties and exact duplicates.
func cleanTags(in []string) []string {
	var out []string
	for _, raw := range in {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// cleanSkills normalizes each entry and drops duplicates by name, keeping
// the first occurrence.
func cleanSkills(in []domain.Skill) []domain.Skill {
	var out []domain.Skill
	for _, sk := range in {
		name := strings.TrimSpace(sk.Name)
		if name == "" {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen.Name == name {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		exp := strings.TrimSpace(sk.Experience)
		if exp == "" {
			exp = "0"
		}
		out = append(out, domain.Skill{Name: name, Experience: domain.NormalizeExperience(exp)})
	}
	return out
}
