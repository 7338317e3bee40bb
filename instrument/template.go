package instrument

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Placeholder replaced with the elapsed duration in templates.
	ElapsedPlaceholder = "{elapsed}"
)

var (
	ErrMissingElapsed = errors.New("template must reference " + ElapsedPlaceholder)
)

// Message template with the elapsed duration bound to [ElapsedPlaceholder].
//
// e.g.,
//
//	MustTemplate("load user %v took {elapsed}", userId)
type Template struct {
	parts []string
}

// Parse message template, args are applied to pat with fmt.Sprintf before the template is parsed.
//
// Returns [ErrMissingElapsed] if pat itself doesn't reference [ElapsedPlaceholder], placeholders in args don't count.
func ParseTemplate(pat string, args ...any) (Template, error) {
	if !strings.Contains(pat, ElapsedPlaceholder) {
		return Template{}, fmt.Errorf("invalid template '%v', %w", pat, ErrMissingElapsed)
	}
	if len(args) > 0 {
		pat = fmt.Sprintf(pat, args...)
	}
	return Template{parts: strings.Split(pat, ElapsedPlaceholder)}, nil
}

// Same as [ParseTemplate] but panics if the template is invalid.
func MustTemplate(pat string, args ...any) Template {
	t, err := ParseTemplate(pat, args...)
	if err != nil {
		panic(err)
	}
	return t
}

// Render message with the elapsed duration.
func (t Template) Render(elapsed time.Duration) string {
	return strings.Join(t.parts, elapsed.String())
}

func defaultMessage(loc string, elapsed time.Duration) string {
	return loc + " completed in " + elapsed.String()
}
