package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"posreport/internal/report"
	"posreport/internal/runfs"
	"posreport/internal/store"
	"posreport/internal/ticket"
)

func newTicketsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "Collapse raw items into the ticket table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSnapshot(cmd.Context(), func(run *runfs.Run, snapshot *store.Store) error {
				return runTickets(cmd.Context(), ctx, run, snapshot)
			})
		},
	}
}

func runTickets(cmdCtx context.Context, ctx *commandContext, run *runfs.Run, snapshot *store.Store) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	items, err := snapshot.ListRawItems(cmdCtx)
	if err != nil {
		return err
	}

	tickets, conflicts := ticket.Collapse(items, ticket.Options{
		Rules:              ctx.rules(),
		ClipDurations:      cfg.Store.ClipDurations,
		MaxDurationMinutes: cfg.Store.MaxDurationMinutes,
	})
	conflicts.Log(logger)

	if err := snapshot.ReplaceTickets(cmdCtx, tickets); err != nil {
		return err
	}
	if err := (report.Emitter{Run: run}).EmitTickets(tickets); err != nil {
		return err
	}

	logger.Info("tickets collapsed",
		slog.Int("raw_rows", len(items)),
		slog.Int("tickets", len(tickets)),
		slog.Int("conflicts", conflicts.Total()),
	)
	return nil
}
