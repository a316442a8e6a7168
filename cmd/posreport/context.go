package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"posreport/internal/businessday"
	"posreport/internal/config"
	"posreport/internal/kpi"
	"posreport/internal/logging"
	"posreport/internal/pos"
	"posreport/internal/runfs"
	"posreport/internal/store"
)

type commandContext struct {
	configFlag *string
	runFlag    *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, runFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		runFlag:    runFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// rules returns the store's business-day rules.
func (c *commandContext) rules() businessday.Rules {
	cfg, _ := c.ensureConfig()
	return businessday.Rules{
		CutoffHour:       cfg.Store.CutoffHour,
		DaypartSplitHour: cfg.Store.DaypartSplitHour,
	}
}

// engine returns a KPI engine configured with the store's exclusion rules.
func (c *commandContext) engine() *kpi.Engine {
	cfg, _ := c.ensureConfig()
	return &kpi.Engine{
		ExcludedMonths:    cfg.ExcludedMonthSet(),
		StrictTicketCount: cfg.Store.StrictTicketCount,
		HourBucketHours:   cfg.Store.HourBucketHours,
	}
}

// attachRun opens the run named by --run, or the most recent one.
func (c *commandContext) attachRun() (*runfs.Run, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if c.runFlag != nil && strings.TrimSpace(*c.runFlag) != "" {
		return runfs.Attach(cfg.Paths.OutputDir, strings.TrimSpace(*c.runFlag))
	}
	return runfs.Latest(cfg.Paths.OutputDir)
}

// withSnapshot attaches to a run, opens its snapshot, and invokes fn.
func (c *commandContext) withSnapshot(ctx context.Context, fn func(*runfs.Run, *store.Store) error) error {
	run, err := c.attachRun()
	if err != nil {
		return err
	}
	defer run.Close()

	snapshot, err := store.Open(ctx, run.SnapshotPath())
	if err != nil {
		return err
	}
	defer snapshot.Close()

	return fn(run, snapshot)
}

// loadTickets reads the ticket table from a run's snapshot.
func (c *commandContext) loadTickets(ctx context.Context, snapshot *store.Store) ([]pos.Ticket, error) {
	return snapshot.ListTickets(ctx)
}
