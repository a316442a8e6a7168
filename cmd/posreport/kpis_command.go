package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posreport/internal/kpi"
	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/store"
)

func newKPIsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Aggregate KPIs by period and daypart",
	}
	cmd.AddCommand(newKPIsMonthlyCommand(ctx))
	cmd.AddCommand(newKPIsWeeklyCommand(ctx))
	return cmd
}

func newKPIsMonthlyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Monthly KPI table by daypart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSnapshot(cmd.Context(), func(run *runfs.Run, snapshot *store.Store) error {
				tickets, err := ctx.loadTickets(cmd.Context(), snapshot)
				if err != nil {
					return err
				}
				periods := ctx.engine().Monthly(tickets)
				emitter := report.Emitter{Run: run}
				if err := emitter.EmitMonthly(periods); err != nil {
					return err
				}
				cfg, _ := ctx.ensureConfig()
				if cfg.Reports.Charts {
					if err := emitter.ChartMonthlySales(periods); err != nil {
						return err
					}
				}
				printKPITable(cmd, periods)
				return nil
			})
		},
	}
}

func newKPIsWeeklyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "ISO-week KPI table by daypart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSnapshot(cmd.Context(), func(run *runfs.Run, snapshot *store.Store) error {
				tickets, err := ctx.loadTickets(cmd.Context(), snapshot)
				if err != nil {
					return err
				}
				periods := ctx.engine().Weekly(tickets)
				emitter := report.Emitter{Run: run}
				if err := emitter.EmitWeekly(periods); err != nil {
					return err
				}
				cfg, _ := ctx.ensureConfig()
				if cfg.Reports.Charts {
					if err := emitter.ChartWeeklySales(periods); err != nil {
						return err
					}
				}
				printKPITable(cmd, periods)
				return nil
			})
		},
	}
}

func printKPITable(cmd *cobra.Command, periods []kpi.PeriodRows) {
	var rows [][]string
	for _, pr := range periods {
		for _, dr := range pr.Rows {
			label := pr.Period.Label
			if dr.Daypart != "Total" {
				label = fmt.Sprintf("%s %s", pr.Period.Label, dr.Daypart)
			}
			rows = append(rows, kpiTableRow(label, dr.Aggregate))
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(kpiTableHeader, rows, kpiTableAligns))
}
