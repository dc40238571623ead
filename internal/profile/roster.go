// Package profile loads simulated users from YAML roster files.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kalambet/cmdroute/internal/domain"
)

// Roster is the set of users (and optionally utterances) a simulation runs over.
type Roster struct {
	Users      []domain.UserProfile
	Utterances []string
}

type rosterFile struct {
	Users      []map[string]any `yaml:"users"`
	Utterances []string         `yaml:"utterances"`
}

// LoadRoster reads a roster from a YAML file.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("reading roster: %w", err)
	}
	r, err := ParseRoster(data)
	if err != nil {
		return Roster{}, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// ParseRoster decodes roster YAML. Every user record is validated; the first
// invalid one aborts the load.
func ParseRoster(data []byte) (Roster, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Roster{}, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(f.Users) == 0 {
		return Roster{}, fmt.Errorf("%w: roster has no users", domain.ErrInvalidArgument)
	}

	r := Roster{Users: make([]domain.UserProfile, 0, len(f.Users))}
	for i, rec := range f.Users {
		u, err := FromRecord(rec)
		if err != nil {
			return Roster{}, fmt.Errorf("user #%d: %w", i+1, err)
		}
		r.Users = append(r.Users, u)
	}

	for _, u := range f.Utterances {
		if u = strings.TrimSpace(u); u != "" {
			r.Utterances = append(r.Utterances, u)
		}
	}
	return r, nil
}

// FromRecord builds a profile from a loosely typed record with keys name,
// age, preferences and is_premium, checking each value's type in that order.
func FromRecord(rec map[string]any) (domain.UserProfile, error) {
	name, ok := rec["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: UserProfile.name must be a non-empty string", domain.ErrInvalidArgument)
	}
	age, ok := rec["age"].(int)
	if !ok || age <= 0 {
		return domain.UserProfile{}, fmt.Errorf("%w: UserProfile.age must be a positive integer", domain.ErrInvalidArgument)
	}
	prefs, ok := rec["preferences"].(map[string]any)
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("%w: UserProfile.preferences must be a map", domain.ErrInvalidArgument)
	}
	premium, ok := rec["is_premium"].(bool)
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("%w: UserProfile.is_premium must be a boolean", domain.ErrInvalidArgument)
	}
	return domain.NewUserProfile(name, age, prefs, premium)
}
