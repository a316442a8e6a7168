package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posreport/internal/occupancy"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/store"
)

// newRunCommand wires the whole pipeline into one invocation: ingest,
// ticket collapse, monthly and weekly KPI tables, and occupancy.
func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline into a fresh run directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings, err := runIngest(cmd.Context(), ctx, true)
			if err != nil {
				return err
			}

			err = ctx.withSnapshot(cmd.Context(), func(run *runfs.Run, snapshot *store.Store) error {
				if err := runTickets(cmd.Context(), ctx, run, snapshot); err != nil {
					return err
				}

				tickets, err := ctx.loadTickets(cmd.Context(), snapshot)
				if err != nil {
					return err
				}

				cfg, _ := ctx.ensureConfig()
				engine := ctx.engine()
				emitter := report.Emitter{Run: run}

				monthly := engine.Monthly(tickets)
				if err := emitter.EmitMonthly(monthly); err != nil {
					return err
				}
				weekly := engine.Weekly(tickets)
				if err := emitter.EmitWeekly(weekly); err != nil {
					return err
				}

				slots := occupancy.Estimate(engine.Restrict(tickets, pos.Period{}, nil))
				if err := emitter.EmitOccupancy(slots); err != nil {
					return err
				}

				if cfg.Reports.Charts {
					if err := emitter.ChartMonthlySales(monthly); err != nil {
						return err
					}
					if err := emitter.ChartWeeklySales(weekly); err != nil {
						return err
					}
					for day, daySlots := range slotsByDay(slots) {
						if err := emitter.ChartOccupancyDay(day, daySlots); err != nil {
							return err
						}
					}
				}

				logger, _ := ctx.ensureLogger()
				logger.Info("pipeline finished", "run", run.ID)
				return nil
			})
			if err != nil {
				return err
			}

			cfg, _ := ctx.ensureConfig()
			if cfg.Reports.WarnExitCode && warnings > 0 {
				return pipeline.Wrap(pipeline.ErrPartial, "run", "", fmt.Sprintf("%d warnings", warnings), nil)
			}
			return nil
		},
	}
}
