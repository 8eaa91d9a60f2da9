package speech

import "strconv"

// Phase is the coarse speech state.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSpeaking Phase = "speaking"
)

// Mode distinguishes reading the whole list from re-speaking one entry.
type Mode string

const (
	ModeSequence Mode = "sequence"
	ModeSingle   Mode = "single"
)

// State is a snapshot of a speech session.
type State struct {
	Phase Phase
	Mode  Mode
	Index int // entry being spoken; -1 when idle
	Total int
	Voice string
}

// Active reports whether an utterance is being spoken or queued
func (s State) Active() bool {
	return s.Phase == PhaseSpeaking
}

// Badge renders the "current / total" progress shown while speaking.
func (s State) Badge() string {
	if !s.Active() {
		return ""
	}
	return strconv.Itoa(s.Index+1) + " / " + strconv.Itoa(s.Total)
}

// Event drives a transition.
type Event int

const (
	EventStart Event = iota
	EventUtteranceEnded
	EventUtteranceFailed
	EventStop
)

// Action is what the sequencer must do after a transition.
type Action int

const (
	ActionNone Action = iota
	ActionSpeak
	ActionPauseThenSpeak
)

func idle(s State) State {
	s.Phase = PhaseIdle
	s.Index = -1
	return s
}

// advance is the single transition function of the speech state machine.
// For EventStart, s carries the mode, total and starting index.
func advance(s State, ev Event) (State, Action) {
	switch ev {
	case EventStart:
		if s.Index < 0 || s.Index >= s.Total {
			return idle(s), ActionNone
		}
		s.Phase = PhaseSpeaking
		return s, ActionSpeak

	case EventUtteranceEnded:
		if s.Phase != PhaseSpeaking || s.Mode == ModeSingle {
			return idle(s), ActionNone
		}
		next := s.Index + 1
		if next >= s.Total {
			return idle(s), ActionNone
		}
		s.Index = next
		return s, ActionPauseThenSpeak

	case EventUtteranceFailed, EventStop:
		return idle(s), ActionNone
	}
	return s, ActionNone
}
