package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posreport/internal/factor"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/segment"
	"posreport/internal/store"
)

func newDecomposeCommand(ctx *commandContext) *cobra.Command {
	var fromArg, toArg, sliceArg string

	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Split a sales delta into customer and spend effects",
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

				engine := ctx.engine()
				decomps := []pos.FactorDecomposition{
					factor.Decompose("overall",
						valuesFor(engine, tickets, from, nil),
						valuesFor(engine, tickets, to, nil)),
				}

				tableLabel := fmt.Sprintf("%s_to_%s", from.label, to.label)
				if sliceArg != "" {
					axis, ok := pos.ParseAxis(sliceArg)
					if !ok {
						return pipeline.Wrap(pipeline.ErrUsage, "", "--slice", fmt.Sprintf("unknown axis %q", sliceArg), nil)
					}
					for _, value := range segment.SliceValues(engine, tickets, from.span(), to.span(), axis) {
						slice := pos.Slice{axis: value}
						decomps = append(decomps, factor.Decompose(value,
							valuesFor(engine, tickets, from, slice),
							valuesFor(engine, tickets, to, slice)))
					}
				}

				for _, d := range decomps {
					if err := factor.VerifyClosure(d); err != nil {
						return pipeline.Wrap(pipeline.ErrInternal, "decompose", "", err.Error(), nil)
					}
				}

				if err := (report.Emitter{Run: run}).EmitDecomposition(tableLabel, decomps); err != nil {
					return err
				}

				printDecompositionTable(cmd, decomps)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromArg, "from", "previous", "Baseline period (period, previous, year-ago, or trailing:N)")
	cmd.Flags().StringVar(&toArg, "to", "", "Target period")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&sliceArg, "slice", "", "Break the decomposition down by axis")

	return cmd
}

func printDecompositionTable(cmd *cobra.Command, decomps []pos.FactorDecomposition) {
	header := []string{"slice", "Δsales", "customer effect", "spend effect", "residual"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(decomps))
	for _, d := range decomps {
		rows = append(rows, []string{
			d.Label,
			displayFloat(d.DeltaSales),
			displayFloat(d.CustomerContribution),
			displayFloat(d.SpendContribution),
			displayFloat(d.ResidualSales),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(header, rows, aligns))
}
