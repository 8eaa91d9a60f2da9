package client

import "strings"

// Preset is a one-tap theme.
type Preset struct {
	Name   string
	Label  string
	Prompt string
}

var presets = []Preset{
	{Name: "calm", Label: "🧘 Calm", Prompt: "peace and calm"},
	{Name: "confidence", Label: "💪 Confidence", Prompt: "confidence and self-belief"},
	{Name: "morning", Label: "🌞 Morning Boost", Prompt: "morning motivation"},
	{Name: "night", Label: "🌙 Night Peace", Prompt: "relaxation before sleep"},
}

// Presets returns the built-in theme presets
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name, case-insensitively
func LookupPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
