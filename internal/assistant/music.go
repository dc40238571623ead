package assistant

import (
	"fmt"
	"strings"

	"github.com/kalambet/cmdroute/internal/domain"
)

const (
	genrePreference = "genre"
	defaultGenre    = "pop"
	musicConfidence = 0.9
	musicRejection  = "Sorry, I can only handle music requests right now."
)

var playlists = map[string][]string{
	"pop":       {"Blinding Lights – The Weeknd", "The Lazy Song – Bruno Mars"},
	"rock":      {"Hotel California – Eagles", "Do I Wanna Know? – Arctic Monkeys"},
	"jazz":      {"So What – Miles Davis", "Take Five – Dave Brubeck"},
	"classical": {"Moonlight Sonata – Beethoven", "Clair de Lune – Debussy"},
}

// Music recommends a playlist for the user's preferred genre.
type Music struct {
	base
}

// NewMusic returns the music assistant for user.
func NewMusic(user domain.UserProfile) *Music {
	m := &Music{base: base{
		user:      user,
		specialty: domain.PlayMusic,
		rejection: musicRejection,
	}}
	m.generate = m.GenerateResponse
	return m
}

func (m *Music) Name() string { return "music" }

// RecommendPlaylist returns the songs for genre, falling back to pop.
func (m *Music) RecommendPlaylist(genre string) []string {
	return append([]string(nil), lookup(playlists, genre, defaultGenre)...)
}

func (m *Music) GenerateResponse(req domain.Request) (domain.Response, error) {
	genre := m.preference(genrePreference, defaultGenre)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here is your %s playlist:", title(genre))
	for _, song := range m.RecommendPlaylist(genre) {
		fmt.Fprintf(&sb, "\n - %s", song)
	}
	return domain.NewResponse(sb.String(), musicConfidence, true)
}
