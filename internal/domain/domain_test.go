package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestNewUserProfile_Valid(t *testing.T) {
	prefs := map[string]any{"genre": "jazz", "goal": "strength"}
	u, err := NewUserProfile("  Alice  ", 30, prefs, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name() != "Alice" {
		t.Errorf("Name() = %q, want %q", u.Name(), "Alice")
	}
	if u.Age() != 30 {
		t.Errorf("Age() = %d, want 30", u.Age())
	}
	if !u.IsPremium() {
		t.Error("IsPremium() = false, want true")
	}
	if g, ok := u.Preference("genre"); !ok || g != "jazz" {
		t.Errorf("Preference(genre) = %q, %v; want jazz, true", g, ok)
	}
	if len(u.Preferences()) != 2 {
		t.Errorf("len(Preferences()) = %d, want 2", len(u.Preferences()))
	}
}

func TestNewUserProfile_EmptyPreferencesAllowed(t *testing.T) {
	if _, err := NewUserProfile("Bob", 22, map[string]any{}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewUserProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		age     int
		prefs   map[string]any
		wantMsg string
	}{
		{"empty name", "", 30, map[string]any{}, "name"},
		{"whitespace name", "   \t", 30, map[string]any{}, "name"},
		{"zero age", "Alice", 0, map[string]any{}, "age"},
		{"negative age", "Alice", -4, map[string]any{}, "age"},
		{"nil preferences", "Alice", 30, nil, "preferences"},
		{"name checked before age", "", -1, nil, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUserProfile(tt.user, tt.age, tt.prefs, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error %v does not wrap ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestUserProfile_PreferencesAreCopied(t *testing.T) {
	prefs := map[string]any{"genre": "rock"}
	u, err := NewUserProfile("Bob", 22, prefs, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prefs["genre"] = "pop"
	u.Preferences()["genre"] = "jazz"

	if g, _ := u.Preference("genre"); g != "rock" {
		t.Errorf("Preference(genre) = %q after external mutation, want rock", g)
	}
}

func TestUserProfile_NonStringPreference(t *testing.T) {
	u, err := NewUserProfile("Cara", 27, map[string]any{"genre": 42}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := u.Preference("genre"); ok {
		t.Error("Preference(genre) ok = true for non-string value")
	}
}

func TestNewRequest(t *testing.T) {
	now := time.Now()
	r, err := NewRequest("  play some music  ", now, PlayMusic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Text != "play some music" {
		t.Errorf("Text = %q, want trimmed", r.Text)
	}
	if r.ID == "" {
		t.Error("ID is empty")
	}
	if !r.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, now)
	}

	other, _ := NewRequest("play", now, PlayMusic)
	if other.ID == r.ID {
		t.Error("two requests share an ID")
	}
}

func TestNewRequest_Invalid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		text string
		ts   time.Time
		cmd  CommandType
	}{
		{"empty text", "", now, PlayMusic},
		{"blank text", "  ", now, PlayMusic},
		{"zero timestamp", "hello", time.Time{}, PlayMusic},
		{"zero command", "hello", now, CommandType(0)},
		{"out of range command", "hello", now, CommandType(99)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRequest(tt.text, tt.ts, tt.cmd); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewResponse_ConfidenceBounds(t *testing.T) {
	tests := []struct {
		confidence float64
		wantErr    bool
	}{
		{0.0, false},
		{1.0, false},
		{0.5, false},
		{1.5, true},
		{-0.1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}
	for _, tt := range tests {
		_, err := NewResponse("ok", tt.confidence, true)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewResponse(confidence=%v) err = %v, wantErr %v", tt.confidence, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewResponse(confidence=%v) err = %v, want ErrInvalidArgument", tt.confidence, err)
		}
	}
}

func TestNewResponse_EmptyMessage(t *testing.T) {
	if _, err := NewResponse(" \n ", 0.5, true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestReply_Defaults(t *testing.T) {
	r, err := Reply("  done  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Message != "done" {
		t.Errorf("Message = %q, want %q", r.Message, "done")
	}
	if r.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", r.Confidence)
	}
	if !r.ActionPerformed {
		t.Error("ActionPerformed = false, want true")
	}
}

func TestCommandType(t *testing.T) {
	if PlayMusic.String() != "PLAY_MUSIC" {
		t.Errorf("String() = %q, want PLAY_MUSIC", PlayMusic.String())
	}
	if SuggestWorkout.Value() != "suggest_workout" {
		t.Errorf("Value() = %q, want suggest_workout", SuggestWorkout.Value())
	}
	if CommandType(7).Valid() {
		t.Error("CommandType(7).Valid() = true")
	}

	for _, in := range []string{"schedule_study", "SCHEDULE_STUDY", " Schedule_Study "} {
		c, err := ParseCommandType(in)
		if err != nil || c != ScheduleStudy {
			t.Errorf("ParseCommandType(%q) = %v, %v; want ScheduleStudy", in, c, err)
		}
	}
	if _, err := ParseCommandType("dance"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseCommandType(dance) err = %v, want ErrInvalidArgument", err)
	}
}

func TestStringForms(t *testing.T) {
	u, _ := NewUserProfile("Alice", 30, map[string]any{"goal": "strength", "genre": "jazz"}, true)
	want := `UserProfile(name="Alice", age=30, is_premium=true, preferences={genre:jazz, goal:strength})`
	if u.String() != want {
		t.Errorf("String() = %s, want %s", u.String(), want)
	}

	r, _ := NewResponse("hi", 0.9, true)
	if !strings.Contains(r.String(), "confidence=0.90") {
		t.Errorf("Response.String() = %s, want confidence=0.90", r.String())
	}
}
