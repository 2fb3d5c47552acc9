package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vodub/internal/runlog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent dubbing runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := runlog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.CreatedAt.Local().Format(time.DateTime),
					string(run.Status),
					run.TargetLanguage,
					run.Source,
					historyDetail(run),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"STARTED", "STATUS", "LANG", "SOURCE", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}

func historyDetail(run *runlog.Run) string {
	switch run.Status {
	case runlog.StatusCompleted:
		return run.OutputPath
	case runlog.StatusFailed:
		if run.FailedStage != "" {
			return fmt.Sprintf("%s: %s", run.FailedStage, run.ErrorClass)
		}
		return run.ErrorClass
	default:
		return ""
	}
}
