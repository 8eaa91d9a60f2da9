package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/mindloop/internal/logger"
	"github.com/google/uuid"
)

var (
	ErrEmptyTheme      = errors.New("enter a theme first")
	ErrInvalidCount    = errors.New("count must be one of 1, 3 or 5")
	ErrSuperseded      = errors.New("request superseded by a newer one")
	ErrNoAffirmations  = errors.New("no affirmations to speak")
	ErrIndexOutOfRange = errors.New("affirmation index out of range")
)

// AllowedCounts are the counts a user may pick.
var AllowedCounts = []int{1, 3, 5}

// Speaker plays affirmations aloud.
type Speaker interface {
	SpeakAll(ctx context.Context, lines []string) error
	SpeakOne(ctx context.Context, text string, index, total int) error
	Stop()
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Theme        string
	Count        int
	Affirmations []string
	Loading      bool
	Err          error
}

// Controller owns the application state: theme, count, the current
// affirmation list and the speech session.
type Controller struct {
	api     API
	speaker Speaker

	mu      sync.Mutex
	theme   string
	count   int
	result  []string
	loading bool
	lastErr error
	pending string // tag of the newest in-flight request
}

func NewController(api API, speaker Speaker, count int) *Controller {
	if !slices.Contains(AllowedCounts, count) {
		count = 3
	}
	return &Controller{
		api:     api,
		speaker: speaker,
		count:   count,
	}
}

// SetCount selects how many affirmations to request
func (c *Controller) SetCount(n int) error {
	if !slices.Contains(AllowedCounts, n) {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	c.mu.Lock()
	c.count = n
	c.mu.Unlock()
	return nil
}

// SetTheme stores the free-text theme used when Generate gets none
func (c *Controller) SetTheme(theme string) {
	c.mu.Lock()
	c.theme = theme
	c.mu.Unlock()
}

// Generate requests affirmations for theme (or the stored theme when empty).
// The list is cleared and speech stopped before the request goes out. Only the
// newest request may write the list; older responses return ErrSuperseded.
func (c *Controller) Generate(ctx context.Context, theme string) ([]string, error) {
	c.mu.Lock()
	usePrompt := strings.TrimSpace(theme)
	if usePrompt == "" {
		usePrompt = strings.TrimSpace(c.theme)
	}
	if usePrompt == "" {
		c.mu.Unlock()
		return nil, ErrEmptyTheme
	}
	tag := uuid.NewString()
	count := c.count
	c.theme = usePrompt
	c.result = nil
	c.loading = true
	c.lastErr = nil
	c.pending = tag
	c.mu.Unlock()

	if c.speaker != nil {
		c.speaker.Stop()
	}

	text, err := c.api.Generate(ctx, BuildPrompt(count, usePrompt), count)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != tag {
		logger.Debug("Discarding superseded affirmation response", logger.Fields{"theme": usePrompt})
		return nil, ErrSuperseded
	}
	c.loading = false
	c.pending = ""

	if err != nil {
		c.lastErr = err
		logger.Error("Failed to generate affirmations", err, logger.Fields{
			"theme": usePrompt,
			"count": count,
		})
		return nil, err
	}

	lines := ParseAffirmations(text)
	if len(lines) > count {
		lines = lines[:count]
	}
	c.result = lines
	return slices.Clone(lines), nil
}

// Affirmations returns the current list
func (c *Controller) Affirmations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.result)
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Theme:        c.theme,
		Count:        c.count,
		Affirmations: slices.Clone(c.result),
		Loading:      c.loading,
		Err:          c.lastErr,
	}
}

// SpeakAll reads the whole list aloud
func (c *Controller) SpeakAll(ctx context.Context) error {
	lines := c.Affirmations()
	if len(lines) == 0 || c.speaker == nil {
		return ErrNoAffirmations
	}
	return c.speaker.SpeakAll(ctx, lines)
}

// SpeakOne reads the entry at index aloud
func (c *Controller) SpeakOne(ctx context.Context, index int) error {
	lines := c.Affirmations()
	if index < 0 || index >= len(lines) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if c.speaker == nil {
		return ErrNoAffirmations
	}
	return c.speaker.SpeakOne(ctx, lines[index], index, len(lines))
}

// StopSpeaking stops any active speech. Safe to call when idle.
func (c *Controller) StopSpeaking() {
	if c.speaker != nil {
		c.speaker.Stop()
	}
}
