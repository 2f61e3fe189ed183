package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dailybrief/internal/config"
)

// NewStatusCmd creates the status command checking store connectivity
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check staging-store connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

func runStatus(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st := newStore(cfg)
	defer st.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("staging store unreachable: %w", err)
	}

	fmt.Println("staging store: connected")
	return nil
}
