package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request is a single classified utterance.
type Request struct {
	ID        string
	Text      string
	Timestamp time.Time
	Command   CommandType
}

// NewRequest validates text, timestamp and command in that order and
// assigns a fresh ID.
func NewRequest(text string, ts time.Time, cmd CommandType) (Request, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Request{}, invalid("Request.text must be a non-empty string")
	}
	if ts.IsZero() {
		return Request{}, invalid("Request.timestamp must be set")
	}
	if !cmd.Valid() {
		return Request{}, invalid("Request.command must be a CommandType, got %d", int(cmd))
	}
	return Request{
		ID:        uuid.New().String(),
		Text:      text,
		Timestamp: ts,
		Command:   cmd,
	}, nil
}

func (r Request) String() string {
	return fmt.Sprintf("Request(text=%q, timestamp=%s, command=%s)",
		r.Text, r.Timestamp.Format(time.RFC3339), r.Command)
}
