// Package cliconfig loads the mindloop command line client settings.
package cliconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Conceptual-Machines/mindloop/internal/client"
	"github.com/Conceptual-Machines/mindloop/internal/speech"
)

//go:embed sample_config.toml
var sampleConfig string

const defaultServerURL = "http://localhost:8080"

// Speech contains the text-to-speech settings.
type Speech struct {
	Command string  `toml:"command"`
	Voice   string  `toml:"voice"`
	Rate    float64 `toml:"rate"`
	Pitch   float64 `toml:"pitch"`
	Volume  float64 `toml:"volume"`
	PauseMS int     `toml:"pause_ms"`
}

// Config is the client configuration file.
type Config struct {
	ServerURL    string `toml:"server_url"`
	DefaultCount int    `toml:"default_count"`
	Speech       Speech `toml:"speech"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ServerURL:    defaultServerURL,
		DefaultCount: 3,
		Speech: Speech{
			Command: "espeak-ng",
			Voice:   speech.PreferredVoiceName,
			Rate:    speech.DefaultRate,
			Pitch:   speech.DefaultPitch,
			Volume:  speech.DefaultVolume,
			PauseMS: int(speech.DefaultPause / time.Millisecond),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mindloop/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "mindloop", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mindloop", "config.toml"), nil
}

// Load reads and validates the configuration at path, or at DefaultPath when
// path is empty. A missing file yields the defaults. It returns the resolved
// path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, "", false, err
		}
		path = defaultPath
	}

	exists := true
	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, path, exists, nil
}

func (c *Config) normalize() {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	c.Speech.Command = strings.TrimSpace(c.Speech.Command)
	c.Speech.Voice = strings.TrimSpace(c.Speech.Voice)
}

// Validate checks the configuration for values the client cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server_url must be an http(s) URL, got %q", c.ServerURL)
	}
	if !slices.Contains(client.AllowedCounts, c.DefaultCount) {
		return fmt.Errorf("default_count must be one of %v, got %d", client.AllowedCounts, c.DefaultCount)
	}
	if c.Speech.Command == "" {
		return errors.New("speech.command must not be empty")
	}
	if c.Speech.Rate <= 0 || c.Speech.Pitch <= 0 || c.Speech.Volume <= 0 {
		return errors.New("speech rate, pitch and volume must be positive")
	}
	if c.Speech.PauseMS < 0 {
		return fmt.Errorf("speech.pause_ms must not be negative, got %d", c.Speech.PauseMS)
	}
	return nil
}

// SpeechConfig converts the [speech] table into sequencer settings.
func (c *Config) SpeechConfig() speech.Config {
	return speech.Config{
		PreferredVoice: c.Speech.Voice,
		Pause:          time.Duration(c.Speech.PauseMS) * time.Millisecond,
		Rate:           c.Speech.Rate,
		Pitch:          c.Speech.Pitch,
		Volume:         c.Speech.Volume,
	}
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
