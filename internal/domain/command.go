package domain

import (
	"fmt"
	"strings"
)

// CommandType is the closed set of user intents the router recognizes.
type CommandType int

const (
	PlayMusic CommandType = iota + 1
	SuggestWorkout
	ScheduleStudy
)

var commandValues = map[CommandType]string{
	PlayMusic:      "play_music",
	SuggestWorkout: "suggest_workout",
	ScheduleStudy:  "schedule_study",
}

// CommandTypes returns every valid command in declaration order.
func CommandTypes() []CommandType {
	return []CommandType{PlayMusic, SuggestWorkout, ScheduleStudy}
}

// Valid reports whether c is a member of the enumeration.
func (c CommandType) Valid() bool {
	_, ok := commandValues[c]
	return ok
}

// Value returns the wire form, e.g. "play_music".
func (c CommandType) Value() string {
	return commandValues[c]
}

// String returns the display name, e.g. "PLAY_MUSIC".
func (c CommandType) String() string {
	v, ok := commandValues[c]
	if !ok {
		return fmt.Sprintf("CommandType(%d)", int(c))
	}
	return strings.ToUpper(v)
}

// ParseCommandType accepts either the wire value or the display name.
func ParseCommandType(s string) (CommandType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, c := range CommandTypes() {
		if commandValues[c] == needle {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown command type %q", ErrInvalidArgument, s)
}
