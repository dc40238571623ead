package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kalambet/cmdroute/internal/assistant"
	"github.com/kalambet/cmdroute/internal/domain"
	"github.com/kalambet/cmdroute/internal/intent"
	"github.com/kalambet/cmdroute/internal/storage"
)

// Recorder persists finished interactions. Implemented by storage.Store.
type Recorder interface {
	SaveInteraction(i storage.Interaction) error
}

// Interaction is the full result of routing one utterance.
type Interaction struct {
	User           domain.UserProfile
	Classification intent.Classification
	Assistant      string
	Greeting       string
	Request        domain.Request
	Response       domain.Response
}

// Router runs utterances through classify, dispatch and response generation.
type Router struct {
	recorder Recorder
	now      func() time.Time
}

// NewRouter creates a Router. recorder may be nil, in which case nothing
// is persisted.
func NewRouter(recorder Recorder) *Router {
	return &Router{recorder: recorder, now: time.Now}
}

// Dispatch selects the assistant for cmd. SCHEDULE_STUDY has no assistant
// of its own and goes to the music assistant, which rejects it.
func Dispatch(cmd domain.CommandType, user domain.UserProfile) assistant.Assistant {
	switch cmd {
	case domain.PlayMusic:
		return assistant.NewMusic(user)
	case domain.SuggestWorkout:
		return assistant.NewFitness(user)
	default:
		return assistant.NewMusic(user)
	}
}

// Handle classifies text, builds the request and lets the dispatched
// assistant answer it.
func (r *Router) Handle(ctx context.Context, user domain.UserProfile, text string) (Interaction, error) {
	if err := ctx.Err(); err != nil {
		return Interaction{}, err
	}

	cls := intent.Explain(text)
	slog.Debug("classified utterance",
		"user", user.Name(),
		"command", cls.Command.String(),
		"keyword", cls.Keyword,
		"fallback", cls.Fallback,
	)

	req, err := domain.NewRequest(text, r.now(), cls.Command)
	if err != nil {
		return Interaction{}, fmt.Errorf("building request: %w", err)
	}

	bot := Dispatch(cls.Command, user)
	if bot.Specialty() != cls.Command {
		slog.Warn("no assistant for command, using fallback",
			"command", cls.Command.String(),
			"assistant", bot.Name(),
			"request_id", req.ID,
		)
	}

	resp, err := bot.HandleRequest(req)
	if err != nil {
		return Interaction{}, fmt.Errorf("%s assistant: %w", bot.Name(), err)
	}

	ix := Interaction{
		User:           user,
		Classification: cls,
		Assistant:      bot.Name(),
		Greeting:       bot.Greet(),
		Request:        req,
		Response:       resp,
	}

	if r.recorder != nil {
		if err := r.recorder.SaveInteraction(toRecord(ix)); err != nil {
			return Interaction{}, fmt.Errorf("recording interaction %s: %w", req.ID, err)
		}
	}
	return ix, nil
}

func toRecord(ix Interaction) storage.Interaction {
	return storage.Interaction{
		ID:              ix.Request.ID,
		CreatedAt:       ix.Request.Timestamp,
		UserName:        ix.User.Name(),
		Utterance:       ix.Request.Text,
		Command:         ix.Request.Command.Value(),
		Keyword:         ix.Classification.Keyword,
		Assistant:       ix.Assistant,
		Message:         ix.Response.Message,
		Confidence:      ix.Response.Confidence,
		ActionPerformed: ix.Response.ActionPerformed,
	}
}
