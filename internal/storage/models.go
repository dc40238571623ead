package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Interaction is one routed utterance and the reply it produced.
type Interaction struct {
	ID              string
	CreatedAt       time.Time
	UserName        string
	Utterance       string
	Command         string // wire value, e.g. "play_music"
	Keyword         string // empty when the classifier fell back
	Assistant       string
	Message         string
	Confidence      float64
	ActionPerformed bool
}
