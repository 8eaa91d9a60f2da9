package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/mindloop/internal/speech"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List speech voices and show which one is used",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			voices, err := listVoices(cmd.Context(), newSpeechEngine(cfg.Speech.Command))
			if err != nil {
				return fmt.Errorf("list voices: %w", err)
			}

			selected, ok := speech.ResolveVoice(voices, cfg.Speech.Voice)
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(voices))
			for _, v := range voices {
				mark := ""
				if ok && v == selected {
					mark = "*"
				}
				rows = append(rows, []string{mark, v.Name, v.Lang, v.Gender})
			}
			if isTerminal(out) {
				fmt.Fprintln(out, renderTable([]string{"", "Voice", "Language", "Gender"}, rows, nil))
			} else {
				for _, r := range rows {
					fmt.Fprintf(out, "%1s %s\t%s\t%s\n", r[0], r[1], r[2], r[3])
				}
			}
			fmt.Fprintf(out, "Using: %s\n", speech.VoiceLabel(selected, ok))
			return nil
		},
	}
}

var errNoVoices = errors.New("speech engine reported no voices")

func listVoices(ctx context.Context, engine speech.Engine) ([]speech.Voice, error) {
	voices, err := engine.Voices(ctx)
	if err != nil {
		return nil, err
	}
	if len(voices) == 0 {
		return nil, errNoVoices
	}
	return voices, nil
}
