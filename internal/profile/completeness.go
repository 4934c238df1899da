package profile

import (
	"math"

	"github.com/quickhire/profile-engine/internal/domain"
)

// Completeness weights. Seven required fields share 70% of the score and
// nine optional fields share the remaining 30%, weighted evenly per field.
const (
	requiredShare = 70.0
	optionalShare = 30.0
)

// Completeness derives a 0..100 score from the record. It is a pure
// function: never persisted, recomputed on every store change.
//
// The demographic booleans are deliberately in neither field set. A false
// there is indistinguishable from unset, and inventing tri-state semantics
// here would silently change scores; the field lists are kept exactly as
// the product defined them.
func Completeness(p domain.Profile) int {
	required := []bool{
		p.FullName != "",
		p.Email != "",
		p.Phone != "",
		p.City != "",
		p.State != "",
		p.TotalExperience != 0,
		len(p.Skills) > 0,
	}
	optional := []bool{
		p.CurrentEmployer != "",
		p.ExpectedSalary != 0,
		p.AvailabilityDate != "",
		len(p.DesiredRoles) > 0,
		len(p.PreferredIndustries) > 0,
		len(p.EmploymentTypes) > 0,
		len(p.Languages) > 0,
		len(p.PreferredLocations) > 0,
		p.AdditionalNotes != "",
	}

	score := 0.0
	for _, set := range required {
		if set {
			score += requiredShare / float64(len(required))
		}
	}
	for _, set := range optional {
		if set {
			score += optionalShare / float64(len(optional))
		}
	}
	return int(math.Round(score))
}
