package client

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// Lines shorter than this many UTF-16 code units are fragments. Browser
// clients measure string length in UTF-16 units, so both clients agree.
const minAffirmationUnits = 4

var (
	lineBreaks    = regexp.MustCompile(`\n+`)
	leadingMarker = regexp.MustCompile(`^[\d.\-•\p{Z}\s\v\x{FEFF}]+`)
	emphasisQuote = regexp.MustCompile(`\*+|["“”]`)

	// Lines containing these are headers, not affirmations.
	headerPhrases = []string{"here are", "affirmations for"}
)

// BuildPrompt composes the outbound prompt for a theme.
func BuildPrompt(count int, theme string) string {
	return fmt.Sprintf("Write exactly %d short, unique, positive affirmations about %s. \nReturn them each on a separate line.", count, theme)
}

// ParseAffirmations splits a response block into clean affirmation lines.
// Numbering, bullets, emphasis and quote characters are stripped; header lines
// and fragments of three characters or fewer are dropped.
func ParseAffirmations(text string) []string {
	var out []string
	for _, line := range lineBreaks.Split(text, -1) {
		line = leadingMarker.ReplaceAllString(line, "")
		line = emphasisQuote.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)

		if line == "" || isHeader(line) || utf16Len(line) < minAffirmationUnits {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range headerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}
