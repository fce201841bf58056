package profile

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service contains business logic for stored academic profiles.
type Service struct {
	Repo ProfileRepo
}

// Save validates and upserts the user's profile.
func (s *Service) Save(ctx context.Context, userID string, p StoredAcademicProfile) (StoredProfile, error) {
	if userID == "" {
		return StoredProfile{}, ErrInvalidInput
	}
	if err := validateProfile(p); err != nil {
		return StoredProfile{}, err
	}

	row := StoredProfile{
		UserID:    userID,
		Profile:   normalizeProfile(p),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Upsert(ctx, row); err != nil {
		return StoredProfile{}, err
	}
	return row, nil
}

// Get returns the user's stored profile.
func (s *Service) Get(ctx context.Context, userID string) (StoredProfile, error) {
	if userID == "" {
		return StoredProfile{}, ErrInvalidInput
	}
	return s.Repo.GetByUser(ctx, userID)
}

// GetOrNil returns the stored profile, or nil when none exists. Downstream
// match runs treat an absent profile as an empty merge source.
func (s *Service) GetOrNil(ctx context.Context, userID string) (*StoredAcademicProfile, error) {
	row, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row.Profile, nil
}

func validateProfile(p StoredAcademicProfile) error {
	if p.GPA != nil && (*p.GPA < 0 || *p.GPA > 4.5) {
		return fmt.Errorf("%w: gpa must be on a 4.0 scale", ErrInvalidInput)
	}
	for name, score := range p.TestScores {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: test score name must not be empty", ErrInvalidInput)
		}
		if score < 0 {
			return fmt.Errorf("%w: test score %s must not be negative", ErrInvalidInput, name)
		}
	}
	if p.Preferences.MaxTuition != nil && *p.Preferences.MaxTuition < 0 {
		return fmt.Errorf("%w: maxTuition must not be negative", ErrInvalidInput)
	}
	if p.Preferences.MinAdmissionRate != nil && (*p.Preferences.MinAdmissionRate < 0 || *p.Preferences.MinAdmissionRate > 1) {
		return fmt.Errorf("%w: minAdmissionRate must be between 0 and 1", ErrInvalidInput)
	}
	return nil
}

// normalizeProfile canonicalizes score names and trims list entries so stored
// rows merge cleanly with CV extractions later.
func normalizeProfile(p StoredAcademicProfile) StoredAcademicProfile {
	out := p
	if len(p.TestScores) > 0 {
		scores := make(map[string]float64, len(p.TestScores))
		for name, score := range p.TestScores {
			scores[normalizeScoreName(name)] = score
		}
		out.TestScores = scores
	}
	out.ResearchInterests = trimList(p.ResearchInterests)
	out.TargetDegree = strings.TrimSpace(p.TargetDegree)
	out.Preferences.Countries = trimList(p.Preferences.Countries)
	out.Preferences.Locations = trimList(p.Preferences.Locations)
	out.Preferences.UniversityTypes = trimList(p.Preferences.UniversityTypes)
	return out
}

func trimList(items []string) []string {
	if len(items) == 0 {
		return items
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
