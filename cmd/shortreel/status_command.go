package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shortreel/internal/fileutil"
	"shortreel/internal/history"
	"shortreel/internal/music"
	"shortreel/internal/preflight"
	"shortreel/internal/project"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency checks, and project artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			writeSection(out, "Configuration", colorize)
			configNote := ctx.configPath
			if !ctx.configSeen {
				configNote += " (defaults)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configNote, colorize))
			fmt.Fprintln(out, renderStatusLine("Subtitles", statusInfo, yesNo(cfg.Subtitles.Enabled), colorize))
			fmt.Fprintln(out, renderStatusLine("Music", statusInfo, yesNo(cfg.Music.Enabled), colorize))

			writeSection(out, "Checks", colorize)
			for _, r := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if cfg.Music.Enabled {
				tracks, err := music.Pool(cfg.Paths.MusicDir, cfg.Music.Extensions)
				switch {
				case err != nil:
					fmt.Fprintln(out, renderStatusLine("Music pool", statusError, err.Error(), colorize))
				case len(tracks) == 0:
					fmt.Fprintln(out, renderStatusLine("Music pool", statusWarn, "no tracks; music stage will fail", colorize))
				default:
					fmt.Fprintln(out, renderStatusLine("Music pool", statusOK, fmt.Sprintf("%d tracks", len(tracks)), colorize))
				}
			}

			if strings.TrimSpace(title) == "" {
				return nil
			}
			layout := project.NewLayout(cfg.Paths.DataDir, title)
			writeSection(out, "Project "+layout.Name, colorize)
			rows, err := artifactRows(layout)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderTable([]string{"Artifact", "Present", "Path"}, rows, nil))

			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			latest, err := store.Latest(cmd.Context(), layout.Name)
			if err != nil {
				return err
			}
			if len(latest) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Stage", "Last status", "When", "Duration"}, latestRows(latest), nil))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Show artifacts for this project title")
	return cmd
}

func artifactRows(layout project.Layout) ([][]string, error) {
	images, _ := filepath.Glob(filepath.Join(layout.ImageDir(), "*"))
	artifacts := []struct{ name, path string }{
		{"script", layout.ScriptPath()},
		{"narration", layout.NarrationPath()},
		{"transcript", layout.TranscriptPath()},
		{"video", layout.BaseVideo()},
		{"subtitled", layout.SubtitledVideo()},
		{"music (subtitled)", layout.MusicVideo(layout.SubtitledVideo())},
		{"music (base)", layout.MusicVideo(layout.BaseVideo())},
	}
	rows := [][]string{{"images", yesNo(len(images) > 0), fmt.Sprintf("%s (%d files)", layout.ImageDir(), len(images))}}
	for _, a := range artifacts {
		ok, err := fileutil.Exists(a.path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{a.name, yesNo(ok), a.path})
	}
	return rows, nil
}

func latestRows(latest map[string]history.Run) [][]string {
	var rows [][]string
	for _, name := range []string{project.StageTiming, project.StageCompose, project.StageCaptions, project.StageMusic} {
		run, ok := latest[name]
		if !ok {
			continue
		}
		rows = append(rows, []string{name, string(run.Status), run.StartedAt.Local().Format(time.DateTime), run.Duration.Round(time.Millisecond).String()})
	}
	return rows
}
