package intent

import (
	"testing"

	"github.com/kalambet/cmdroute/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want domain.CommandType
	}{
		{"Hey, play some music for me", domain.PlayMusic},
		{"I love this SONG", domain.PlayMusic},
		{"MUSIC please", domain.PlayMusic},
		{"I want a strength workout routine", domain.SuggestWorkout},
		{"Suggest an endurance exercise plan", domain.SuggestWorkout},
		{"Can you help me study OOP concepts?", domain.ScheduleStudy},
		{"Explain polymorphism in simple terms", domain.ScheduleStudy},
		{"I want to learn Go", domain.ScheduleStudy},
		{"Give me a pop playlist", domain.PlayMusic},
		{"", domain.PlayMusic},
		{"what's the weather", domain.PlayMusic},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// music outranks workout, workout outranks study.
	if got := Classify("play a workout song while I study"); got != domain.PlayMusic {
		t.Errorf("got %v, want PLAY_MUSIC", got)
	}
	if got := Classify("explain this exercise"); got != domain.SuggestWorkout {
		t.Errorf("got %v, want SUGGEST_WORKOUT", got)
	}
}

func TestClassify_WholeWordsOnly(t *testing.T) {
	// "studying" and "workouts" are not whole-word keyword matches.
	if got := Explain("studying workouts"); !got.Fallback {
		t.Errorf("Explain = %+v, want fallback", got)
	}
}

func TestExplain(t *testing.T) {
	got := Explain("Suggest an ENDURANCE plan")
	want := Classification{Command: domain.SuggestWorkout, Keyword: "endurance"}
	if got != want {
		t.Errorf("Explain = %+v, want %+v", got, want)
	}

	fb := Explain("nothing relevant")
	if !fb.Fallback || fb.Command != DefaultCommand || fb.Keyword != "" {
		t.Errorf("Explain fallback = %+v", fb)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Can you help me study OOP concepts?"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("run %d: Classify = %v, want %v", i, got, first)
		}
	}
}

func TestKeywords_ReturnsCopy(t *testing.T) {
	kw := Keywords()
	if len(kw[domain.SuggestWorkout]) != 4 {
		t.Fatalf("workout keywords = %v, want 4 entries", kw[domain.SuggestWorkout])
	}
	kw[domain.PlayMusic][0] = "mutated"
	if Keywords()[domain.PlayMusic][0] != "play" {
		t.Error("Keywords() exposed internal slice")
	}
}
