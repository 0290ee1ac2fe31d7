package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

// nonWord is anything but a Unicode letter, digit or underscore
const nonWord = `[^\p{L}\p{N}_]`

// DefaultBakingKeywords are the whole words that mark a listing as a baking recipe
var DefaultBakingKeywords = []string{"bake", "baking", "bakes"}

// KeywordMatcher reports whether text mentions any of a set of whole words
type KeywordMatcher struct {
	pattern  *regexp.Regexp
	keywords []string
}

// NewKeywordMatcher compiles a case-insensitive whole-word matcher for keywords.
// Blank keywords are ignored; at least one non-blank keyword is required.
func NewKeywordMatcher(keywords []string) (*KeywordMatcher, error) {
	var kept []string
	var quoted []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		kept = append(kept, k)
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("keyword matcher needs at least one keyword")
	}

	// RE2's \b only knows ASCII word characters, so the boundaries are spelled out.
	pattern, err := regexp.Compile(`(?i)(?:^|` + nonWord + `)(?:` + strings.Join(quoted, "|") + `)(?:` + nonWord + `|$)`)
	if err != nil {
		return nil, fmt.Errorf("compile keyword pattern: %w", err)
	}

	return &KeywordMatcher{pattern: pattern, keywords: kept}, nil
}

// Matches reports whether any of texts contains a keyword as a whole word
func (m *KeywordMatcher) Matches(texts ...string) bool {
	for _, t := range texts {
		if m.pattern.MatchString(t) {
			return true
		}
	}
	return false
}

// Keywords returns the keywords the matcher was built from
func (m *KeywordMatcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}
