package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"posreport/internal/fileutil"
	"posreport/internal/ingest"
	"posreport/internal/pipeline"
	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/store"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Read vendor POS CSVs and build the run snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings, err := runIngest(cmd.Context(), ctx, true)
			if err != nil {
				return err
			}
			cfg, _ := ctx.ensureConfig()
			if cfg.Reports.WarnExitCode && warnings > 0 {
				return pipeline.Wrap(pipeline.ErrPartial, "ingest", "", fmt.Sprintf("%d warnings", warnings), nil)
			}
			return nil
		},
	}
}

// runIngest performs a full ingest into a fresh run directory and returns
// the warning count. Shared with the `run` orchestration command.
func runIngest(cmdCtx context.Context, ctx *commandContext, progress bool) (int, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return 0, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return 0, err
	}

	run, err := runfs.New(cfg.Paths.OutputDir)
	if err != nil {
		return 0, err
	}
	defer run.Close()

	collector := pipeline.NewCollector(logger)
	ingestor := ingest.New(cfg, logger, collector)
	ingestor.Progress = progress

	result, err := ingestor.Run(cmdCtx)
	if err != nil {
		return 0, err
	}

	snapshot, err := store.Open(cmdCtx, run.SnapshotPath())
	if err != nil {
		return 0, err
	}
	defer snapshot.Close()

	if err := snapshot.ReplaceRawItems(cmdCtx, result.Items); err != nil {
		return 0, err
	}
	if err := snapshot.AppendWarnings(cmdCtx, collector.Warnings()); err != nil {
		return 0, err
	}

	emitter := report.Emitter{Run: run}
	if err := emitter.EmitMerged(result.Items); err != nil {
		return 0, err
	}
	if err := emitter.EmitEatIn(result.Items); err != nil {
		return 0, err
	}
	if err := emitter.EmitWarnings(collector.Warnings()); err != nil {
		return 0, err
	}

	if err := emitter.EmitRunInfo(run.ID, cfg.Store.Name, time.Now()); err != nil {
		return 0, err
	}
	if ctx.configExists {
		// A copy of the effective config makes the run reproducible.
		if err := fileutil.CopyFile(ctx.configPath, filepath.Join(run.Dir, "config.toml")); err != nil {
			return 0, err
		}
	}

	for _, rc := range collector.ReasonCounts() {
		logger.Info("rows dropped", slog.String("reason", rc.Reason), slog.Int("count", rc.Count))
	}
	logger.Info("run created", slog.String("dir", run.Dir))
	return collector.Count(), nil
}
