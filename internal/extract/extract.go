// Package extract locates a level definition inside free-form model output.
package extract

import (
	"regexp"

	"github.com/ahrav/levelforge/internal/domain"
)

// spanPattern matches from the first "import" to the first following "};",
// across newlines. The lazy quantifier keeps the span as short as possible, so
// nested object literals that close with "}," or "}" do not end it.
var spanPattern = regexp.MustCompile(`(?s)import.*?};`)

// Extract returns the first definition span in raw, inclusive of both
// delimiters. It reports false when raw has no "import" token or no closing
// "};" after it.
//
// When the model echoes the prompt's example before its own answer, the echo
// is returned. Callers must not expect disambiguation here.
func Extract(raw domain.RawOutput) (domain.Candidate, bool) {
	span := spanPattern.FindString(string(raw))
	if span == "" {
		return "", false
	}
	return domain.Candidate(span), true
}
