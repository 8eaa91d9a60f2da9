package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffirmPrintsPlainLines(t *testing.T) {
	server := newFakeServer(t)
	cfg := writeTestConfig(t, server.URL)

	out, _, err := runCLI(t, "--config", cfg, "affirm", "inner", "peace")
	require.NoError(t, err)

	assert.Equal(t, "I am calm.\nI am strong.\nI am enough.\n", out)
	req := server.lastRequest(t)
	assert.Equal(t, 3, req.Count)
	assert.Equal(t, "Write exactly 3 short, unique, positive affirmations about inner peace. \nReturn them each on a separate line.", req.Prompt)
}

func TestAffirmTruncatesToCount(t *testing.T) {
	server := newFakeServer(t)
	cfg := writeTestConfig(t, server.URL)

	out, _, err := runCLI(t, "--config", cfg, "affirm", "--count", "1", "calm")
	require.NoError(t, err)
	assert.Equal(t, "I am calm.\n", out)
	assert.Equal(t, 1, server.lastRequest(t).Count)
}

func TestAffirmUsesPreset(t *testing.T) {
	server := newFakeServer(t)
	cfg := writeTestConfig(t, server.URL)

	_, _, err := runCLI(t, "--config", cfg, "affirm", "--preset", "Night")
	require.NoError(t, err)
	assert.Contains(t, server.lastRequest(t).Prompt, "about relaxation before sleep.")
}

func TestAffirmServerFlagOverridesConfig(t *testing.T) {
	server := newFakeServer(t)
	cfg := writeTestConfig(t, "http://127.0.0.1:1")

	_, _, err := runCLI(t, "--config", cfg, "--server", server.URL+"/", "affirm", "calm")
	require.NoError(t, err)
	assert.Contains(t, server.lastRequest(t).Prompt, "about calm.")
}

func TestAffirmErrors(t *testing.T) {
	server := newFakeServer(t)
	cfg := writeTestConfig(t, server.URL)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty theme", []string{"affirm"}, "enter a theme first"},
		{"unknown preset", []string{"affirm", "--preset", "stormy"}, `unknown preset "stormy"`},
		{"count not offered", []string{"affirm", "--count", "4", "calm"}, "count must be one of 1, 3 or 5"},
		{"only out of range", []string{"affirm", "--only", "9", "calm"}, "affirmation index out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFakeEngine(t)
			_, _, err := runCLI(t, append([]string{"--config", cfg}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAffirmReportsServerError(t *testing.T) {
	server := newFakeServer(t)
	server.status = http.StatusInternalServerError
	server.body = jsonBody{"error": "Failed to generate affirmations."}
	cfg := writeTestConfig(t, server.URL)

	out, _, err := runCLI(t, "--config", cfg, "affirm", "calm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500: Failed to generate affirmations.")
	assert.Empty(t, out)
}

func TestAffirmSpeaksAll(t *testing.T) {
	engine := useFakeEngine(t)
	server := newFakeServer(t)
	cfg := writeTestConfig(t, server.URL)

	_, errOut, err := runCLI(t, "--config", cfg, "affirm", "--speak", "calm")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"First affirmation: I am calm.",
		"Second affirmation: I am strong.",
		"3rd affirmation: I am enough.",
	}, engine.texts())
	assert.Contains(t, errOut, "Speaking 1 / 3 (English (America))")
	assert.Contains(t, errOut, "Speaking 3 / 3")
}

func TestAffirmSpeaksOnlyOne(t *testing.T) {
	engine := useFakeEngine(t)
	server := newFakeServer(t)
	cfg := writeTestConfig(t, server.URL)

	_, _, err := runCLI(t, "--config", cfg, "affirm", "--only", "2", "calm")
	require.NoError(t, err)
	assert.Equal(t, []string{"I am strong."}, engine.texts())
}
