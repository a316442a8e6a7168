package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"posreport/internal/occupancy"
	"posreport/internal/pos"
	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/store"
)

func newOccupancyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "occupancy",
		Short: "Estimate 10-minute in-store occupancy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSnapshot(cmd.Context(), func(run *runfs.Run, snapshot *store.Store) error {
				tickets, err := ctx.loadTickets(cmd.Context(), snapshot)
				if err != nil {
					return err
				}

				slots := occupancy.Estimate(ctx.engine().Restrict(tickets, pos.Period{}, nil))
				emitter := report.Emitter{Run: run}
				if err := emitter.EmitOccupancy(slots); err != nil {
					return err
				}

				cfg, _ := ctx.ensureConfig()
				if cfg.Reports.Charts {
					for day, daySlots := range slotsByDay(slots) {
						if err := emitter.ChartOccupancyDay(day, daySlots); err != nil {
							return err
						}
					}
				}

				logger, _ := ctx.ensureLogger()
				logger.Info("occupancy estimated", "slots", len(slots))
				printOccupancySummary(cmd, slots)
				return nil
			})
		},
	}
}

// slotsByDay splits the flat slot series back into per-business-date runs.
// Estimate emits slots grouped and ordered, so order within a day is kept.
func slotsByDay(slots []pos.OccupancySlot) map[time.Time][]pos.OccupancySlot {
	byDay := make(map[time.Time][]pos.OccupancySlot)
	for _, s := range slots {
		byDay[s.BusinessDate] = append(byDay[s.BusinessDate], s)
	}
	return byDay
}

// printOccupancySummary shows each operating day's peak slot.
func printOccupancySummary(cmd *cobra.Command, slots []pos.OccupancySlot) {
	header := []string{"business_date", "peak slot", "peak occupants"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight}

	var rows [][]string
	var currentDay time.Time
	var peak pos.OccupancySlot
	flush := func() {
		if currentDay.IsZero() {
			return
		}
		rows = append(rows, []string{
			currentDay.Format(time.DateOnly),
			report.SlotLabel(peak),
			fmt.Sprintf("%d", peak.Occupants),
		})
	}
	for _, s := range slots {
		if !s.BusinessDate.Equal(currentDay) {
			flush()
			currentDay = s.BusinessDate
			peak = s
			continue
		}
		if s.Occupants > peak.Occupants {
			peak = s
		}
	}
	flush()

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(header, rows, aligns))
}
