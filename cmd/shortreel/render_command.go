package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"shortreel/internal/history"
	"shortreel/internal/music"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/workflow"
)

type renderOptions struct {
	script        scriptFlags
	noSubtitles   bool
	noMusic       bool
	seed          uint64
	skipPreflight bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a project through timing, compose, subtitles, and music",
		Long: `Render a project end to end. Each stage reuses its artifact when it already
exists, so rerunning after a failure only redoes the missing work.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			script, err := opts.script.load(cfg)
			if err != nil {
				return err
			}
			toggles := workflow.DefaultToggles(cfg)
			if opts.noSubtitles {
				toggles.Subtitles = false
			}
			if opts.noMusic {
				toggles.Music = false
			}
			var seed *uint64
			if cmd.Flags().Changed("seed") {
				seed = &opts.seed
			}
			stages := workflow.BuildStages(cfg, ctx.prober(), ctx.runner(), music.NewRand(seed), toggles, ctx.loggerValue())
			return runStages(cmd, ctx, stages, script, !opts.skipPreflight)
		},
	}
	opts.script.register(cmd)
	cmd.Flags().BoolVar(&opts.noSubtitles, "no-subtitles", false, "Skip burning word captions")
	cmd.Flags().BoolVar(&opts.noMusic, "no-music", false, "Skip the background music mix")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for background track selection")
	cmd.Flags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "Skip directory and binary checks")
	return cmd
}

// runStages renders script through stages and prints the per-stage report.
func runStages(cmd *cobra.Command, ctx *commandContext, stages workflow.StageSet, script project.Script, preflight bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := ctx.historyStore()
	if err != nil {
		return err
	}
	orch := workflow.New(cfg, stages, ctx.loggerValue(),
		workflow.WithRecorder(store),
		workflow.WithPreflight(preflight),
	)
	report, renderErr := orch.Render(cmd.Context(), script)
	if len(report.Outcomes) > 0 {
		printReport(cmd.OutOrStdout(), report)
	}
	return renderErr
}

func printReport(out io.Writer, report workflow.Report) {
	rows := make([][]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		status := string(history.StatusCompleted)
		detail := strings.TrimSpace(o.Result.Detail)
		switch {
		case o.Err != nil:
			status = string(services.FailureStatus(o.Err))
			detail = o.Err.Error()
		case o.Result.Skipped:
			status = string(history.StatusSkipped)
		}
		rows = append(rows, []string{o.Stage, status, o.Result.Output, detail})
	}
	fmt.Fprintf(out, "Project %s (run %s)\n", report.Project, report.RunID)
	fmt.Fprintln(out, renderTable([]string{"Stage", "Status", "Output", "Detail"}, rows, nil))
	if report.Final != "" {
		fmt.Fprintf(out, "Final video: %s\n", report.Final)
	}
}
