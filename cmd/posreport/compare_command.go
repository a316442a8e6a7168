package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posreport/internal/compare"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/segment"
	"posreport/internal/store"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var fromArg, toArg, sliceArg string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare KPIs between two periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSnapshot(cmd.Context(), func(run *runfs.Run, snapshot *store.Store) error {
				tickets, err := ctx.loadTickets(cmd.Context(), snapshot)
				if err != nil {
					return err
				}

				to, err := resolvePeriodArg("--to", toArg, pos.Period{})
				if err != nil {
					return err
				}
				from, err := resolvePeriodArg("--from", fromArg, to.periods[0])
				if err != nil {
					return err
				}

				entries, axisLabel, err := comparisonEntries(ctx, tickets, from, to, sliceArg)
				if err != nil {
					return err
				}

				emitter := report.Emitter{Run: run}
				if err := emitter.EmitComparison(axisLabel, from.label, to.label, entries); err != nil {
					return err
				}

				printComparisonTable(cmd, from.label, to.label, entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromArg, "from", "previous", "Baseline period (period, previous, year-ago, or trailing:N)")
	cmd.Flags().StringVar(&toArg, "to", "", "Target period")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&sliceArg, "slice", "", "Break the comparison down by axis")

	return cmd
}

// comparisonEntries builds the per-slice comparison rows. With no slicing
// a single "overall" entry comes back.
func comparisonEntries(ctx *commandContext, tickets []pos.Ticket, from, to periodSet, sliceArg string) ([]report.ComparisonEntry, string, error) {
	kpiEngine := ctx.engine()

	if sliceArg == "" {
		rows := compare.Compare(
			valuesFor(kpiEngine, tickets, from, nil),
			valuesFor(kpiEngine, tickets, to, nil),
		)
		return []report.ComparisonEntry{{SliceValue: "overall", Rows: rows}}, "overall", nil
	}

	axis, ok := pos.ParseAxis(sliceArg)
	if !ok {
		return nil, "", pipeline.Wrap(pipeline.ErrUsage, "", "--slice", fmt.Sprintf("unknown axis %q", sliceArg), nil)
	}

	values := segment.SliceValues(kpiEngine, tickets, from.span(), to.span(), axis)
	entries := make([]report.ComparisonEntry, 0, len(values))
	for _, value := range values {
		slice := pos.Slice{axis: value}
		rows := compare.Compare(
			valuesFor(kpiEngine, tickets, from, slice),
			valuesFor(kpiEngine, tickets, to, slice),
		)
		entries = append(entries, report.ComparisonEntry{SliceValue: value, Rows: rows})
	}
	return entries, string(axis), nil
}

func printComparisonTable(cmd *cobra.Command, fromLabel, toLabel string, entries []report.ComparisonEntry) {
	header := []string{"slice", "metric", fromLabel, toLabel, "diff", "pct_change"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
	var rows [][]string
	for _, entry := range entries {
		for _, r := range entry.Rows {
			rows = append(rows, []string{
				entry.SliceValue,
				r.Metric,
				displayFloat(r.From),
				displayFloat(r.To),
				displayFloat(r.Diff),
				displayRatio(r.PctChange),
			})
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(header, rows, aligns))
}
