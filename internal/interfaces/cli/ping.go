package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/reservas-cli/internal/config"
	"github.com/example/reservas-cli/internal/infrastructure/reservas"
)

func NewPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the reservation service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := reservas.New(cfg).Ping(ctx); err != nil {
				return friendly(err)
			}
			fmt.Printf("%s: ok\n", cfg.BaseURL)
			return nil
		},
	}
}
