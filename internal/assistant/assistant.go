// Package assistant implements the canned-response assistants a request is
// dispatched to.
package assistant

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kalambet/cmdroute/internal/domain"
)

// Assistant is the capability set shared by every variant.
type Assistant interface {
	// Name identifies the variant, e.g. "music".
	Name() string
	// Specialty is the only command the variant serves.
	Specialty() domain.CommandType
	Greet() string
	// HandleRequest rejects requests outside the specialty and otherwise
	// delegates to GenerateResponse.
	HandleRequest(req domain.Request) (domain.Response, error)
	GenerateResponse(req domain.Request) (domain.Response, error)
}

// base carries the user and the behavior common to all variants.
type base struct {
	user      domain.UserProfile
	specialty domain.CommandType
	rejection string
	generate  func(domain.Request) (domain.Response, error)
}

func (b *base) Specialty() domain.CommandType { return b.specialty }

func (b *base) Greet() string {
	return fmt.Sprintf("Hello, %s! What can I do for you today?", b.user.Name())
}

func (b *base) HandleRequest(req domain.Request) (domain.Response, error) {
	if req.Command != b.specialty {
		return domain.NewResponse(b.rejection, 0.0, false)
	}
	return b.generate(req)
}

// preference returns the user's preference under key, or def when it is
// absent or not a string.
func (b *base) preference(key, def string) string {
	if v, ok := b.user.Preference(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// lookup returns table[strings.ToLower(key)] or table[def].
func lookup[V any](table map[string]V, key, def string) V {
	if v, ok := table[strings.ToLower(key)]; ok {
		return v
	}
	return table[def]
}

func title(s string) string {
	return cases.Title(language.Und).String(s)
}
