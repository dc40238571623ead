package assistant

import (
	"fmt"

	"github.com/kalambet/cmdroute/internal/domain"
)

const (
	goalPreference    = "goal"
	defaultGoal       = "endurance"
	fitnessConfidence = 0.85
	fitnessRejection  = "I'm not set up for that request."
)

var workouts = map[string]string{
	"strength":    "3×5 heavy squats, 3×5 bench press, 3×5 deadlift",
	"endurance":   "30-minute run, 15-minute bike, 10-minute jump rope",
	"flexibility": "20-minute yoga flow, 10-minute stretching",
}

// Fitness suggests a routine for the user's training goal.
type Fitness struct {
	base
}

// NewFitness returns the fitness assistant for user.
func NewFitness(user domain.UserProfile) *Fitness {
	f := &Fitness{base: base{
		user:      user,
		specialty: domain.SuggestWorkout,
		rejection: fitnessRejection,
	}}
	f.generate = f.GenerateResponse
	return f
}

func (f *Fitness) Name() string { return "fitness" }

// SuggestWorkout returns the routine for goal, falling back to endurance.
func (f *Fitness) SuggestWorkout(goal string) string {
	return lookup(workouts, goal, defaultGoal)
}

func (f *Fitness) GenerateResponse(req domain.Request) (domain.Response, error) {
	goal := f.preference(goalPreference, defaultGoal)
	msg := fmt.Sprintf("Here's a %s routine for you:\n%s", title(goal), f.SuggestWorkout(goal))
	return domain.NewResponse(msg, fitnessConfidence, true)
}
