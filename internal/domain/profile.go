package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidArgument is wrapped by every constructor validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// UserProfile holds a simulated user and their preference settings.
type UserProfile struct {
	name        string
	age         int
	preferences map[string]any
	premium     bool
}

// NewUserProfile validates name, age and preferences in that order.
// A nil preferences map is rejected; an empty one is fine.
func NewUserProfile(name string, age int, preferences map[string]any, premium bool) (UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UserProfile{}, invalid("UserProfile.name must be a non-empty string")
	}
	if age <= 0 {
		return UserProfile{}, invalid("UserProfile.age must be a positive integer")
	}
	if preferences == nil {
		return UserProfile{}, invalid("UserProfile.preferences must be a map")
	}

	prefs := make(map[string]any, len(preferences))
	for k, v := range preferences {
		prefs[k] = v
	}
	return UserProfile{name: name, age: age, preferences: prefs, premium: premium}, nil
}

func (u UserProfile) Name() string { return u.name }

func (u UserProfile) Age() int { return u.age }

func (u UserProfile) IsPremium() bool { return u.premium }

// Preferences returns a copy of the preference map.
func (u UserProfile) Preferences() map[string]any {
	cp := make(map[string]any, len(u.preferences))
	for k, v := range u.preferences {
		cp[k] = v
	}
	return cp
}

// Preference returns the preference under key when it is present and a string.
func (u UserProfile) Preference(key string) (string, bool) {
	v, ok := u.preferences[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (u UserProfile) String() string {
	keys := make([]string, 0, len(u.preferences))
	for k := range u.preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s:%v", k, u.preferences[k])
	}
	return fmt.Sprintf("UserProfile(name=%q, age=%d, is_premium=%t, preferences={%s})",
		u.name, u.age, u.premium, strings.Join(pairs, ", "))
}
