package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/mindloop/internal/speech"
)

const sampleBlock = "✨ Affirmations for *calm*:\n\nI am calm.\nI am strong.\nI am enough."

type recordedRequest struct {
	Prompt string `json:"prompt"`
	Count  int    `json:"count"`
}

type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     any
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{
		status: http.StatusOK,
		body:   jsonBody{"affirmations": sampleBlock},
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recordedRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		fs.mu.Lock()
		fs.requests = append(fs.requests, req)
		status, body := fs.status, fs.body
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

type jsonBody = map[string]any

type fakeEngine struct {
	mu     sync.Mutex
	spoken []string
	voices []speech.Voice
}

func (f *fakeEngine) Voices(context.Context) ([]speech.Voice, error) {
	return f.voices, nil
}

func (f *fakeEngine) Speak(_ context.Context, u speech.Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, u.Text)
	return nil
}

func (f *fakeEngine) Cancel() error { return nil }

func (f *fakeEngine) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

func useFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	engine := &fakeEngine{voices: []speech.Voice{
		{ID: "de", Name: "Anna", Lang: "de-DE", Gender: "female"},
		{ID: "en-us", Name: "English (America)", Lang: "en-us"},
	}}
	prev := newSpeechEngine
	newSpeechEngine = func(string) speech.Engine { return engine }
	t.Cleanup(func() { newSpeechEngine = prev })
	return engine
}

// writeTestConfig writes a config with a short pause so speech tests run fast.
func writeTestConfig(t *testing.T, serverURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "server_url = \"" + serverURL + "\"\n\n[speech]\npause_ms = 1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
