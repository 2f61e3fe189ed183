package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dailybrief/internal/config"
	"dailybrief/internal/logger"
	"dailybrief/internal/scheduler"
	"dailybrief/internal/server"
)

// NewScheduleCmd creates the schedule command running the daily cron loop
func NewScheduleCmd() *cobra.Command {
	var withServer bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the daily briefing on a cron schedule",
		Long: `Run as a long-lived process that triggers a briefing cycle on the
configured cron schedule (default: 10:05 every day).

With --with-server the operational HTTP surface (health check, staged
article listing, manual trigger) is served alongside the scheduler.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd.Context(), withServer)
		},
	}

	cmd.Flags().BoolVar(&withServer, "with-server", false, "also serve the status/trigger HTTP endpoints")

	return cmd
}

func runSchedule(ctx context.Context, withServer bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := newStore(cfg)
	defer st.Close()

	pipe := newPipeline(cfg, st, false)
	job := func(ctx context.Context) {
		if _, err := pipe.Run(ctx); err != nil {
			logger.Error("scheduled briefing failed", err)
		}
	}

	sched := scheduler.New(cfg.Schedule.Spec)
	if err := sched.Start(ctx, job); err != nil {
		return err
	}
	defer sched.Stop()

	if withServer {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		trigger := func(ctx context.Context) error {
			_, err := pipe.Run(ctx)
			return err
		}
		return server.New(addr, st, trigger).Start(ctx)
	}

	<-ctx.Done()
	return nil
}
