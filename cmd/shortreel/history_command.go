package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shortreel/internal/history"
	"shortreel/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var opts history.ListOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded stage runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			if opts.Project != "" {
				opts.Project = textutil.SanitizeTitle(opts.Project)
			}
			runs, err := store.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No stage runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				result := run.Output
				if run.Error != "" {
					result = run.Error
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Project,
					run.Stage,
					string(run.Status),
					run.Duration.Round(time.Millisecond).String(),
					shortRunID(run.RunID),
					result,
				})
			}
			headers := []string{"Started", "Project", "Stage", "Status", "Duration", "Run", "Output / Error"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Only show runs for this project title")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "Only show runs for this run id")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 50, "Maximum number of runs to show")
	return cmd
}

func shortRunID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
