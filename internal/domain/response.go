package domain

import (
	"fmt"
	"math"
	"strings"
)

// DefaultConfidence is the confidence of a Response built with Reply.
const DefaultConfidence = 1.0

// Response is an assistant's reply to a Request.
type Response struct {
	Message         string
	Confidence      float64
	ActionPerformed bool
}

// NewResponse validates message then confidence. The confidence range is
// inclusive on both ends.
func NewResponse(message string, confidence float64, actionPerformed bool) (Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Response{}, invalid("Response.message must be a non-empty string")
	}
	if math.IsNaN(confidence) || confidence < 0.0 || confidence > 1.0 {
		return Response{}, invalid("Response.confidence must be between 0.0 and 1.0, got %v", confidence)
	}
	return Response{
		Message:         message,
		Confidence:      confidence,
		ActionPerformed: actionPerformed,
	}, nil
}

// Reply builds a Response with default confidence and the action marked performed.
func Reply(message string) (Response, error) {
	return NewResponse(message, DefaultConfidence, true)
}

func (r Response) String() string {
	return fmt.Sprintf("Response(message=%q, confidence=%.2f, action_performed=%t)",
		r.Message, r.Confidence, r.ActionPerformed)
}
