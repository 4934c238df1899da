package app

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quickhire/profile-engine/internal/domain"
)

// seedFile is the YAML fixture shape: a list of records keyed by subject.
type seedFile struct {
	Profiles []seedEntry `yaml:"profiles"`
}

type seedEntry struct {
	Subject string `yaml:"subject"`
	Profile struct {
		CandidateCode    string   `yaml:"candidate_code"`
		FullName         string   `yaml:"full_name"`
		Email            string   `yaml:"email"`
		Phone            string   `yaml:"phone"`
		City             string   `yaml:"city"`
		State            string   `yaml:"state"`
		CurrentEmployer  string   `yaml:"current_employer"`
		TotalExperience  int      `yaml:"total_experience"`
		ExpectedSalary   float64  `yaml:"expected_ctc"`
		AvailabilityDate string   `yaml:"availability_date"`
		DesiredRoles     []string `yaml:"desired_roles"`
		Languages        []string `yaml:"languages"`
		Skills           []struct {
			Name       string `yaml:"name"`
			Experience string `yaml:"experience"`
		} `yaml:"skills"`
		ScoreNotes string `yaml:"score_notes"`
		Resume     struct {
			FilePath string `yaml:"file_path"`
			FileName string `yaml:"file_name"`
		} `yaml:"resume"`
	} `yaml:"profile"`
}

// SeedProfiles loads a YAML fixture into the repository. Existing records
// for seeded subjects are overwritten; useful for demos and e2e setups.
func SeedProfiles(ctx domain.Context, path string, repo domain.ProfileRepository) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("op=seed.read: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("op=seed.decode: %w", err)
	}
	for _, e := range f.Profiles {
		if e.Subject == "" {
			return fmt.Errorf("op=seed: entry without subject")
		}
		p := domain.Profile{
			CandidateCode:    e.Profile.CandidateCode,
			FullName:         e.Profile.FullName,
			Email:            e.Profile.Email,
			Phone:            e.Profile.Phone,
			City:             e.Profile.City,
			State:            e.Profile.State,
			CurrentEmployer:  e.Profile.CurrentEmployer,
			TotalExperience:  e.Profile.TotalExperience,
			ExpectedSalary:   e.Profile.ExpectedSalary,
			AvailabilityDate: e.Profile.AvailabilityDate,
			DesiredRoles:     e.Profile.DesiredRoles,
			Languages:        e.Profile.Languages,
			ScoreNotes:       e.Profile.ScoreNotes,
			Resume: domain.ResumeRef{
				FilePath: e.Profile.Resume.FilePath,
				FileName: e.Profile.Resume.FileName,
			},
		}
		for _, sk := range e.Profile.Skills {
			p.Skills = append(p.Skills, domain.Skill{
				Name:       sk.Name,
				Experience: domain.NormalizeExperience(sk.Experience),
			})
		}
		if err := repo.Put(ctx, e.Subject, p); err != nil {
			return fmt.Errorf("op=seed.put subject=%s: %w", e.Subject, err)
		}
		slog.Info("seeded profile", slog.String("subject", e.Subject), slog.String("candidate_code", p.CandidateCode))
	}
	return nil
}
