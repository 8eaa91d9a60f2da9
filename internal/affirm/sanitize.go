package affirm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// instructionPattern matches the formatting instruction clients append to their prompt.
var instructionPattern = regexp.MustCompile(`(?i)Return them each on a separate line.?:?`)

// SanitizePrompt removes known instruction fragments from a prompt and trims it.
func SanitizePrompt(prompt string) string {
	return strings.TrimSpace(instructionPattern.ReplaceAllString(prompt, ""))
}

// SafetyFilter detects prompts that should be redirected to the support message.
type SafetyFilter struct {
	words []string
}

func NewSafetyFilter(words []string) *SafetyFilter {
	lower := cases.Lower(language.Und)
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(lower.String(w))
		if w != "" {
			normalized = append(normalized, w)
		}
	}
	return &SafetyFilter{words: normalized}
}

// Match reports the first banned substring contained in prompt, ignoring case.
func (f *SafetyFilter) Match(prompt string) (string, bool) {
	if prompt == "" || len(f.words) == 0 {
		return "", false
	}
	// cases.Caser is stateful, so each call gets its own.
	lowered := cases.Lower(language.Und).String(prompt)
	for _, w := range f.words {
		if strings.Contains(lowered, w) {
			return w, true
		}
	}
	return "", false
}
