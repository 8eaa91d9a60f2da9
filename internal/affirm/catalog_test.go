package affirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, 8, catalog.Size())
	assert.Contains(t, catalog.Affirmations(), "My mind is focused, calm, and powerful.")
	assert.ElementsMatch(t,
		[]string{"kill", "suicide", "die", "hate", "hurt", "murder", "harm", "weapon", "blood"},
		catalog.BannedWords())
	assert.Equal(t,
		"⚠️ Let's keep this positive.\n"+
			"If you're feeling low, please reach out to someone who cares about you.\n"+
			"You matter — take a breath, and know that support is always available.",
		catalog.SupportMessage())
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	lines := catalog.Affirmations()
	lines[0] = "mutated"

	assert.NotEqual(t, "mutated", catalog.Affirmations()[0])
	assert.False(t, catalog.Contains("mutated"))
}

func TestParseCatalogCompactsEntries(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
affirmations: ["  I am calm. ", "", "I am calm.", "I am kind."]
banned_words: [harm]
support_message: ["Be well."]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"I am calm.", "I am kind."}, catalog.Affirmations())
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "no affirmations",
			input:   "affirmations: []\nsupport_message: [ok]\n",
			wantErr: ErrEmptyCatalog,
		},
		{
			name:    "no support message",
			input:   "affirmations: [I am here.]\n",
			wantErr: ErrEmptySupportMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ParseCatalog([]byte("affirmations: [unterminated"))
	assert.Error(t, err)
}
