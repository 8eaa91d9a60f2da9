package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/mindloop/internal/client"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "presets",
		Short:       "List preset themes",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := client.Presets()
			if !isTerminal(out) {
				for _, p := range presets {
					fmt.Fprintf(out, "%s\t%s\n", p.Name, p.Prompt)
				}
				return nil
			}
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				rows = append(rows, []string{p.Name, p.Label, p.Prompt})
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Label", "Theme"}, rows, nil))
			return nil
		},
	}
}
