package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVoice(t *testing.T) {
	aria := Voice{ID: "aria", Name: PreferredVoiceName, Lang: "en-US", Gender: "female"}
	ariaOther := Voice{ID: "aria2", Name: "Aria Classic", Lang: "en-GB"}
	female := Voice{ID: "f", Name: "Google UK English Female", Lang: "en-GB"}
	english := Voice{ID: "en", Name: "Daniel", Lang: "en-AU"}
	german := Voice{ID: "de", Name: "Anna", Lang: "de-DE"}

	tests := []struct {
		name   string
		voices []Voice
		want   Voice
		wantOK bool
	}{
		{"exact preferred name", []Voice{german, ariaOther, aria}, aria, true},
		{"name contains aria", []Voice{german, english, ariaOther}, ariaOther, true},
		{"name contains female", []Voice{german, english, female}, female, true},
		{"english language tag", []Voice{german, english}, english, true},
		{"first voice", []Voice{german}, german, true},
		{"no voices", nil, Voice{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveVoice(tt.voices, PreferredVoiceName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVoiceLabel(t *testing.T) {
	assert.Equal(t, "Daniel", VoiceLabel(Voice{Name: "Daniel"}, true))
	assert.Equal(t, DefaultVoiceLabel, VoiceLabel(Voice{}, false))
}

func TestOrdinalLabel(t *testing.T) {
	tests := map[int]string{
		0:  "First affirmation:",
		1:  "Second affirmation:",
		2:  "3rd affirmation:",
		3:  "4th affirmation:",
		10: "11th affirmation:",
		11: "12th affirmation:",
		12: "13th affirmation:",
		20: "21st affirmation:",
		21: "22nd affirmation:",
	}
	for i, want := range tests {
		assert.Equal(t, want, OrdinalLabel(i), "index %d", i)
	}
}
