// Package simulation drives scripted sessions through the router and prints
// a plain-text transcript.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/kalambet/cmdroute/internal/domain"
	"github.com/kalambet/cmdroute/internal/pipeline"
)

// Router is the part of pipeline.Router the simulation needs.
type Router interface {
	Handle(ctx context.Context, user domain.UserProfile, text string) (pipeline.Interaction, error)
}

// Simulator runs a fixed number of random utterances per user.
type Simulator struct {
	router Router
	out    io.Writer
	rng    *rand.Rand
	rounds int
}

// New creates a Simulator. rounds <= 0 means 3.
func New(router Router, out io.Writer, rng *rand.Rand, rounds int) *Simulator {
	if rounds <= 0 {
		rounds = 3
	}
	return &Simulator{router: router, out: out, rng: rng, rounds: rounds}
}

// NewRand returns a PCG generator for seed; seed 0 draws a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run plays one session per user, picking each utterance at random.
// It stops at the first failed interaction.
func (s *Simulator) Run(ctx context.Context, users []domain.UserProfile, utterances []string) error {
	if len(utterances) == 0 {
		return errors.New("no utterances to simulate")
	}

	for _, u := range users {
		if _, err := fmt.Fprintf(s.out, "=== Session for %s ===\n\n", u.Name()); err != nil {
			return err
		}
		for i := 0; i < s.rounds; i++ {
			text := utterances[s.rng.IntN(len(utterances))]
			ix, err := s.router.Handle(ctx, u, text)
			if err != nil {
				return fmt.Errorf("session %s, round %d: %w", u.Name(), i+1, err)
			}
			if err := PrintInteraction(s.out, ix); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(s.out, "\n\n"); err != nil {
			return err
		}
		slog.Debug("session finished", "user", u.Name(), "rounds", s.rounds)
	}
	return nil
}

// PrintInteraction writes the greeting and response lines for ix followed
// by a blank line.
func PrintInteraction(w io.Writer, ix pipeline.Interaction) error {
	name := ix.User.Name()
	_, err := fmt.Fprintf(w, "[%s] %s\n[%s → %s] %s\n\n",
		name, ix.Greeting,
		name, ix.Request.Command, ix.Response.Message,
	)
	return err
}
