package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dailybrief/internal/config"
	"dailybrief/internal/logger"
)

// NewRunCmd creates the run command for a one-shot briefing run
func NewRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one briefing cycle now",
		Long: `Run one briefing cycle immediately: read today's staged articles,
enrich and rank them, render the digest, and deliver it by email.

Examples:
  # Process today's batch and send the digest
  dailybrief run

  # Render the digest to stdout without sending
  dailybrief run --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render the digest without delivering it")

	return cmd
}

func runOnce(ctx context.Context, dryRun bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := newStore(cfg)
	defer st.Close()

	result, err := newPipeline(cfg, st, dryRun).Run(ctx)
	if err != nil {
		return err
	}

	if result.Fetched == 0 {
		logger.Warn("nothing staged for today, no digest generated")
		return nil
	}

	if dryRun {
		fmt.Println(result.Digest)
	}

	logger.Info("run complete",
		"fetched", result.Fetched,
		"included", result.Included,
		"sent", result.Sent)
	return nil
}
