package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Conceptual-Machines/mindloop/internal/logger"
)

var (
	ErrNothingToSpeak  = errors.New("nothing to speak")
	ErrIndexOutOfRange = errors.New("speech index out of range")
)

const (
	DefaultPause  = 600 * time.Millisecond
	DefaultRate   = 1.0
	DefaultPitch  = 1.05
	DefaultVolume = 1.0
)

// Config controls voice selection and pacing.
type Config struct {
	PreferredVoice string
	Pause          time.Duration // between utterances of a sequence
	Rate           float64
	Pitch          float64
	Volume         float64
}

func (c Config) withDefaults() Config {
	if c.PreferredVoice == "" {
		c.PreferredVoice = PreferredVoiceName
	}
	if c.Pause <= 0 {
		c.Pause = DefaultPause
	}
	if c.Rate <= 0 {
		c.Rate = DefaultRate
	}
	if c.Pitch <= 0 {
		c.Pitch = DefaultPitch
	}
	if c.Volume <= 0 {
		c.Volume = DefaultVolume
	}
	return c
}

// DefaultConfig returns the standard pacing and voice parameters
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// Observer is notified of every state change. It runs on the session goroutine
// and must not start or stop speech itself.
type Observer func(State)

type session struct {
	cancel context.CancelFunc
	done   chan struct{}

	stateMu sync.Mutex
	state   State
}

func (s *session) setState(state State) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.state = state
}

func (s *session) getState() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// Sequencer speaks affirmations one at a time over an Engine. Every start
// fully cancels the previous session first, so at most one utterance is ever
// in flight.
type Sequencer struct {
	engine   Engine
	cfg      Config
	observer Observer

	// startMu serializes start/stop; mu guards current only.
	startMu sync.Mutex
	mu      sync.Mutex
	current *session
}

func NewSequencer(engine Engine, cfg Config, observer Observer) *Sequencer {
	if observer == nil {
		observer = func(State) {}
	}
	return &Sequencer{
		engine:   engine,
		cfg:      cfg.withDefaults(),
		observer: observer,
	}
}

// SpeakAll starts reading lines in order, each prefixed with its ordinal label.
// It returns once the session has started; use Done to wait for it.
func (s *Sequencer) SpeakAll(ctx context.Context, lines []string) error {
	if len(lines) == 0 {
		return ErrNothingToSpeak
	}
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = OrdinalLabel(i) + " " + line
	}
	return s.start(ctx, State{Mode: ModeSequence, Index: 0, Total: len(lines)}, func(i int) string { return texts[i] })
}

// SpeakOne speaks a single entry of a total-entry list without a label. index
// only positions the entry for progress reporting.
func (s *Sequencer) SpeakOne(ctx context.Context, text string, index, total int) error {
	if text == "" {
		return ErrNothingToSpeak
	}
	if index < 0 || index >= total {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, total)
	}
	return s.start(ctx, State{Mode: ModeSingle, Index: index, Total: total}, func(int) string { return text })
}

// Stop cancels the active session and returns once it is idle. It is a no-op
// when nothing is speaking.
func (s *Sequencer) Stop() {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	s.stopCurrent()
}

// Status returns the current state
func (s *Sequencer) Status() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return State{Phase: PhaseIdle, Index: -1}
	}
	return s.current.getState()
}

// Done returns a channel closed when the current session ends. It is already
// closed when idle.
func (s *Sequencer) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.current.done
}

// ResolveVoice asks the engine for voices and applies the fallback chain.
func (s *Sequencer) ResolveVoice(ctx context.Context) (Voice, bool) {
	voices, err := s.engine.Voices(ctx)
	if err != nil {
		logger.Warn("Failed to list speech voices", logger.Fields{"error": err.Error()})
		return Voice{}, false
	}
	return ResolveVoice(voices, s.cfg.PreferredVoice)
}

// start launches a session. textAt returns the text for an entry index.
func (s *Sequencer) start(ctx context.Context, initial State, textAt func(int) string) error {
	// Listing voices may run a subprocess; keep it outside startMu so Stop
	// never waits on it.
	voice, ok := s.ResolveVoice(ctx)
	initial.Voice = VoiceLabel(voice, ok)

	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.stopCurrent()

	initial.Phase = PhaseIdle

	sessCtx, cancel := context.WithCancel(ctx)
	sess := &session{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// Resolve the start transition before publishing so Status never shows
	// a half-started session.
	state, action := advance(initial, EventStart)
	sess.state = state

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	go s.run(sessCtx, sess, state, action, textAt, voice)
	return nil
}

// stopCurrent cancels the running session and waits for its goroutine. The
// caller holds startMu.
func (s *Sequencer) stopCurrent() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev == nil {
		return
	}
	prev.cancel()
	if err := s.engine.Cancel(); err != nil {
		logger.Warn("Speech engine cancel failed", logger.Fields{"error": err.Error()})
	}
	<-prev.done
}

func (s *Sequencer) run(ctx context.Context, sess *session, state State, action Action, textAt func(int) string, voice Voice) {
	defer close(sess.done)
	defer s.release(sess)
	defer sess.cancel()

	s.observer(state)

	for action != ActionNone {
		if action == ActionPauseThenSpeak && !s.pause(ctx) {
			state, action = advance(state, EventStop)
			s.publish(sess, state)
			return
		}

		err := s.engine.Speak(ctx, Utterance{
			Text:   textAt(state.Index),
			Voice:  voice,
			Rate:   s.cfg.Rate,
			Pitch:  s.cfg.Pitch,
			Volume: s.cfg.Volume,
		})

		var ev Event
		switch {
		case ctx.Err() != nil:
			ev = EventStop
		case err != nil:
			logger.Error("Speech engine failed", err, logger.Fields{
				"index": state.Index,
				"total": state.Total,
			})
			ev = EventUtteranceFailed
		default:
			ev = EventUtteranceEnded
		}

		state, action = advance(state, ev)
		s.publish(sess, state)
	}
}

func (s *Sequencer) publish(sess *session, state State) {
	sess.setState(state)
	s.observer(state)
}

func (s *Sequencer) pause(ctx context.Context) bool {
	timer := time.NewTimer(s.cfg.Pause)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// release clears current if it still points at sess.
func (s *Sequencer) release(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == sess {
		s.current = nil
	}
}
