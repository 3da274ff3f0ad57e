package main

import (
	"github.com/spf13/cobra"

	"shortreel/internal/music"
	"shortreel/internal/workflow"
)

type stageCommandSpec struct {
	use   string
	short string
	pick  func(workflow.StageSet) workflow.StageSet
}

// newStageCommands returns one command per pipeline stage. Each runs through
// the orchestrator so it takes the project lock and records history.
func newStageCommands(ctx *commandContext) []*cobra.Command {
	specs := []stageCommandSpec{
		{
			use:   "timing",
			short: "Allocate scene timing from the narration length",
			pick:  func(s workflow.StageSet) workflow.StageSet { return workflow.StageSet{Timing: s.Timing} },
		},
		{
			use:   "compose",
			short: "Compose the panned, crossfaded scene video",
			pick:  func(s workflow.StageSet) workflow.StageSet { return workflow.StageSet{Compose: s.Compose} },
		},
		{
			use:   "subtitles",
			short: "Burn word-by-word captions into the composed video",
			pick:  func(s workflow.StageSet) workflow.StageSet { return workflow.StageSet{Captions: s.Captions} },
		},
		{
			use:   "music",
			short: "Mix a random background track under the latest video",
			pick:  func(s workflow.StageSet) workflow.StageSet { return workflow.StageSet{Music: s.Music} },
		},
	}

	cmds := make([]*cobra.Command, 0, len(specs))
	for _, spec := range specs {
		cmds = append(cmds, newStageCommand(ctx, spec))
	}
	return cmds
}

func newStageCommand(ctx *commandContext, spec stageCommandSpec) *cobra.Command {
	var script scriptFlags
	var seed uint64
	var noSubtitles bool

	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s, err := script.load(cfg)
			if err != nil {
				return err
			}
			var seedPtr *uint64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			toggles := workflow.Toggles{Subtitles: !noSubtitles, Music: true}
			all := workflow.BuildStages(cfg, ctx.prober(), ctx.runner(), music.NewRand(seedPtr), toggles, ctx.loggerValue())
			return runStages(cmd, ctx, spec.pick(all), s, false)
		},
	}
	script.register(cmd)
	if spec.use == "music" {
		cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for background track selection")
		cmd.Flags().BoolVar(&noSubtitles, "no-subtitles", false, "Mix under the base video even when a captioned video exists")
	}
	return cmd
}
