package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dailybrief/internal/config"
	"dailybrief/internal/server"
)

// NewServeCmd creates the serve command for the operational HTTP surface
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the status HTTP server",
		Long: `Start the operational HTTP server without the scheduler.

Endpoints:
  GET /api/briefing/health    staging-store connectivity
  GET /api/briefing/articles  today's staged articles
  GET /api/briefing/trigger   run one briefing cycle now`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), host, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

func runServe(ctx context.Context, host string, port int) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if host == "" {
		host = cfg.Server.Host
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := newStore(cfg)
	defer st.Close()

	pipe := newPipeline(cfg, st, false)
	trigger := func(ctx context.Context) error {
		_, err := pipe.Run(ctx)
		return err
	}

	return server.New(fmt.Sprintf("%s:%d", host, port), st, trigger).Start(ctx)
}
