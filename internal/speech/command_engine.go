package speech

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultSpeechCommand = "espeak-ng"

	// espeak-ng scales
	baseWordsPerMinute = 175
	basePitch          = 50
	maxPitch           = 99
	baseAmplitude      = 100
	maxAmplitude       = 200
)

// CommandEngine speaks through an espeak-compatible command line synthesizer.
type CommandEngine struct {
	command string

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewCommandEngine(command string) *CommandEngine {
	if strings.TrimSpace(command) == "" {
		command = defaultSpeechCommand
	}
	return &CommandEngine{command: command}
}

// Voices runs "<command> --voices" and parses the table it prints.
func (e *CommandEngine) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, e.command, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("list %s voices: %w", e.command, err)
	}
	return parseVoiceList(out), nil
}

// Speak runs the synthesizer for one utterance and waits for it to finish.
func (e *CommandEngine) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.command, speakArgs(u)...)
	cmd.Stdin = strings.NewReader(u.Text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.mu.Lock()
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("start %s: %w", e.command, err)
	}
	e.cmd = cmd
	e.mu.Unlock()

	err := cmd.Wait()

	e.mu.Lock()
	if e.cmd == cmd {
		e.cmd = nil
	}
	e.mu.Unlock()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", e.command, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Cancel kills the running synthesizer process, if any.
func (e *CommandEngine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	err := e.cmd.Process.Kill()
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill %s: %w", e.command, err)
	}
	return nil
}

func speakArgs(u Utterance) []string {
	args := []string{"--stdin"}
	if id := u.Voice.ID; id != "" {
		args = append(args, "-v", id)
	}
	if u.Rate > 0 {
		args = append(args, "-s", strconv.Itoa(int(baseWordsPerMinute*u.Rate)))
	}
	if u.Pitch > 0 {
		args = append(args, "-p", strconv.Itoa(min(int(basePitch*u.Pitch), maxPitch)))
	}
	if u.Volume > 0 {
		args = append(args, "-a", strconv.Itoa(min(int(baseAmplitude*u.Volume), maxAmplitude)))
	}
	return args
}

// parseVoiceList reads espeak-ng --voices output:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US
func parseVoiceList(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}

		gender := ""
		if _, g, ok := strings.Cut(fields[2], "/"); ok {
			switch g {
			case "F":
				gender = "female"
			case "M":
				gender = "male"
			}
		}

		voices = append(voices, Voice{
			ID:     fields[1],
			Name:   strings.ReplaceAll(fields[3], "_", " "),
			Lang:   fields[1],
			Gender: gender,
		})
	}
	return voices
}
