package intent

import (
	"regexp"
	"strings"

	"github.com/kalambet/cmdroute/internal/domain"
)

// DefaultCommand is returned when no keyword group matches.
const DefaultCommand = domain.PlayMusic

// keywordGroup binds whole-word keywords to a command.
type keywordGroup struct {
	command  domain.CommandType
	keywords []string
	pattern  *regexp.Regexp
}

func newGroup(cmd domain.CommandType, keywords ...string) keywordGroup {
	return keywordGroup{
		command:  cmd,
		keywords: keywords,
		pattern:  regexp.MustCompile(`\b(` + strings.Join(keywords, "|") + `)\b`),
	}
}

// groups are tested in order; the first match wins.
var groups = []keywordGroup{
	newGroup(domain.PlayMusic, "play", "song", "music"),
	newGroup(domain.SuggestWorkout, "workout", "exercise", "strength", "endurance"),
	newGroup(domain.ScheduleStudy, "study", "learn", "explain"),
}

// Classification is the outcome of classifying one utterance.
type Classification struct {
	Command  domain.CommandType
	Keyword  string // matched keyword; empty when Fallback is set
	Fallback bool
}

// Classify maps text to a command. It never fails: text matching no
// keyword group yields DefaultCommand.
func Classify(text string) domain.CommandType {
	return Explain(text).Command
}

// Explain is Classify with the matched keyword reported.
func Explain(text string) Classification {
	t := strings.ToLower(text)
	for _, g := range groups {
		if m := g.pattern.FindString(t); m != "" {
			return Classification{Command: g.command, Keyword: m}
		}
	}
	return Classification{Command: DefaultCommand, Fallback: true}
}

// Keywords returns a copy of the keywords bound to each command.
func Keywords() map[domain.CommandType][]string {
	out := make(map[domain.CommandType][]string, len(groups))
	for _, g := range groups {
		out[g.command] = append([]string(nil), g.keywords...)
	}
	return out
}
