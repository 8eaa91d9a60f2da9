package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/mindloop/internal/client"
	"github.com/Conceptual-Machines/mindloop/internal/speech"
)

func newAffirmCommand(ctx *commandContext) *cobra.Command {
	var count int
	var presetName string
	var speak bool
	var only int

	cmd := &cobra.Command{
		Use:   "affirm [theme...]",
		Short: "Generate affirmations for a theme",
		Example: `  mindloop affirm inner peace
  mindloop affirm --preset calm --count 5 --speak
  mindloop affirm confidence --only 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := strings.TrimSpace(strings.Join(args, " "))
			if presetName != "" {
				preset, ok := client.LookupPreset(presetName)
				if !ok {
					return fmt.Errorf("unknown preset %q (see mindloop presets)", presetName)
				}
				if theme == "" {
					theme = preset.Prompt
				}
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = cfg.DefaultCount
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errOut := cmd.ErrOrStderr()
			seq := ctx.sequencer(progressObserver(errOut))
			controller := client.NewController(ctx.apiClient(), seq, count)
			if err := controller.SetCount(count); err != nil {
				return err
			}

			lines, err := controller.Generate(runCtx, theme)
			if err != nil {
				return fmt.Errorf("generate affirmations: %w", err)
			}

			out := cmd.OutOrStdout()
			printAffirmations(out, lines)

			switch {
			case only > 0:
				err = controller.SpeakOne(runCtx, only-1)
			case speak:
				err = controller.SpeakAll(runCtx)
			default:
				return nil
			}
			if err != nil {
				return fmt.Errorf("speak: %w", err)
			}

			select {
			case <-seq.Done():
			case <-runCtx.Done():
				controller.StopSpeaking()
				fmt.Fprintln(errOut, "Speech stopped")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 3, "Number of affirmations (1, 3 or 5)")
	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "Use a preset theme")
	cmd.Flags().BoolVarP(&speak, "speak", "s", false, "Read all affirmations aloud")
	cmd.Flags().IntVar(&only, "only", 0, "Read only the affirmation with this number aloud")
	return cmd
}

func printAffirmations(out io.Writer, lines []string) {
	if !isTerminal(out) {
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return
	}
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = []string{strconv.Itoa(i + 1), line}
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Affirmation"}, rows, []columnAlignment{alignRight, alignLeft}))
}

func progressObserver(w io.Writer) speech.Observer {
	return func(s speech.State) {
		if s.Active() {
			fmt.Fprintf(w, "Speaking %s (%s)\n", s.Badge(), s.Voice)
		}
	}
}
