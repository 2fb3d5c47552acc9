package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vodub/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// The standalone check reports every tool as required so a
			// missing downloader is surfaced even before any remote run.
			statuses := deps.CheckBinaries(deps.For(cfg, true))
			colorize := shouldColorize(cmd.OutOrStdout())

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				note := status.Command
				if !status.Available {
					state = "missing"
					note = status.Detail
				}
				if colorize {
					if status.Available {
						state = ansiGreen + state + ansiReset
					} else {
						state = ansiRed + state + ansiReset
					}
				}
				rows = append(rows, []string{status.Name, state, status.Description, note})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"TOOL", "STATUS", "PURPOSE", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if !deps.AllRequiredAvailable(statuses) {
				return fmt.Errorf("required external tools are missing")
			}
			return nil
		},
	}
}
