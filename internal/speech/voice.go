package speech

import (
	"context"
	"fmt"
	"strings"
)

// PreferredVoiceName is the voice picked first when available.
const PreferredVoiceName = "Microsoft Aria Online (Natural) - English (United States)"

// DefaultVoiceLabel is shown when no voice could be resolved.
const DefaultVoiceLabel = "Default voice"

// Voice is a voice offered by an Engine.
type Voice struct {
	ID     string // engine-specific identifier
	Name   string
	Lang   string
	Gender string
}

// Utterance is one piece of text to speak.
type Utterance struct {
	Text   string
	Voice  Voice
	Rate   float64
	Pitch  float64
	Volume float64
}

// Engine is a speech synthesis capability.
type Engine interface {
	// Voices lists the available voices.
	Voices(ctx context.Context) ([]Voice, error)
	// Speak blocks until the utterance has been spoken. It returns ctx.Err()
	// when ctx is cancelled first.
	Speak(ctx context.Context, u Utterance) error
	// Cancel aborts whatever the engine is currently speaking.
	Cancel() error
}

// ResolveVoice picks a voice: exact preferred name, then a name containing
// "aria", then "female", then an English language tag, then the first voice.
func ResolveVoice(voices []Voice, preferred string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	matchers := []func(Voice) bool{
		func(v Voice) bool { return preferred != "" && v.Name == preferred },
		func(v Voice) bool { return strings.Contains(strings.ToLower(v.Name), "aria") },
		func(v Voice) bool { return strings.Contains(strings.ToLower(v.Name), "female") },
		func(v Voice) bool { return strings.HasPrefix(v.Lang, "en") },
	}
	for _, match := range matchers {
		for _, v := range voices {
			if match(v) {
				return v, true
			}
		}
	}
	return voices[0], true
}

// VoiceLabel returns the display name of a resolved voice
func VoiceLabel(v Voice, ok bool) string {
	if !ok || v.Name == "" {
		return DefaultVoiceLabel
	}
	return v.Name
}

// OrdinalLabel returns the spoken prefix for the entry at zero-based index i.
func OrdinalLabel(i int) string {
	switch i {
	case 0:
		return "First affirmation:"
	case 1:
		return "Second affirmation:"
	}
	n := i + 1
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s affirmation:", n, suffix)
}
