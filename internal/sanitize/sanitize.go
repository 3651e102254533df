// Package sanitize cleans user-generated content before it is stored:
// disallowed markup is stripped and length is capped.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips disallowed markup and truncates overlong content.
type Sanitizer struct {
	rich  *bluemonday.Policy
	plain *bluemonday.Policy
}

// New creates a sanitizer. Rich content keeps basic inline formatting;
// plain content keeps no markup at all.
func New() *Sanitizer {
	rich := bluemonday.NewPolicy()
	rich.AllowElements("b", "i", "em", "strong", "br")

	return &Sanitizer{
		rich:  rich,
		plain: bluemonday.StrictPolicy(),
	}
}

// Content sanitizes post/message bodies, keeping allowed inline tags,
// and truncates to max runes.
func (s *Sanitizer) Content(content string, max int) string {
	return truncate(strings.TrimSpace(s.rich.Sanitize(content)), max)
}

// Plain strips all markup, for names, titles and similar single-line fields.
func (s *Sanitizer) Plain(text string, max int) string {
	return truncate(strings.TrimSpace(s.plain.Sanitize(text)), max)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
