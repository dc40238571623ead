package profile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kalambet/cmdroute/internal/domain"
)

const validRoster = `
users:
  - name: Alice
    age: 30
    is_premium: true
    preferences:
      genre: jazz
      goal: strength
  - name: "  Bob  "
    age: 22
    is_premium: false
    preferences: {}
utterances:
  - "Hey, play some music for me"
  - "   "
  - "Suggest an endurance exercise plan"
`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoster(t *testing.T) {
	r, err := LoadRoster(writeRoster(t, validRoster))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if len(r.Users) != 2 {
		t.Fatalf("got %d users, want 2", len(r.Users))
	}

	alice := r.Users[0]
	if alice.Name() != "Alice" || alice.Age() != 30 || !alice.IsPremium() {
		t.Errorf("Alice = %s", alice)
	}
	if g, _ := alice.Preference("genre"); g != "jazz" {
		t.Errorf("Alice genre = %q, want jazz", g)
	}
	if r.Users[1].Name() != "Bob" {
		t.Errorf("Bob name = %q, want trimmed", r.Users[1].Name())
	}

	if len(r.Utterances) != 2 {
		t.Errorf("utterances = %q, want blank entries dropped", r.Utterances)
	}
}

func TestLoadRoster_MissingFile(t *testing.T) {
	if _, err := LoadRoster(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseRoster_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"no users", "utterances: [hi]", "no users"},
		{"bad yaml", "users: [", "parsing yaml"},
		{"empty name", "users:\n  - {name: '', age: 3, is_premium: true, preferences: {}}", "name"},
		{"name not string", "users:\n  - {name: 12, age: 3, is_premium: true, preferences: {}}", "name"},
		{"zero age", "users:\n  - {name: A, age: 0, is_premium: true, preferences: {}}", "age"},
		{"float age", "users:\n  - {name: A, age: 3.5, is_premium: true, preferences: {}}", "age"},
		{"preferences list", "users:\n  - {name: A, age: 3, is_premium: true, preferences: [jazz]}", "preferences"},
		{"preferences missing", "users:\n  - {name: A, age: 3, is_premium: true}", "preferences"},
		{"premium string", "users:\n  - {name: A, age: 3, is_premium: 'yes', preferences: {}}", "is_premium"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoster([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFromRecord_WrapsInvalidArgument(t *testing.T) {
	_, err := FromRecord(map[string]any{"name": "A", "age": 3, "preferences": map[string]any{}, "is_premium": "no"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestFromRecord_CheckOrder(t *testing.T) {
	// Every field is wrong; the name is reported first.
	_, err := FromRecord(map[string]any{"age": "old", "preferences": 1})
	if err == nil || !strings.Contains(err.Error(), "name") {
		t.Errorf("err = %v, want name error", err)
	}
}
