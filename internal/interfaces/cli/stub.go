package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/example/reservas-cli/internal/config"
	"github.com/example/reservas-cli/internal/stubserver"
)

func NewServeStubCmd() *cobra.Command {
	var listen string

	c := &cobra.Command{
		Use:   "serve-stub",
		Short: "Run an in-memory stand-in for the reservation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.StubListenAddr
			}
			s := stubserver.New(newLogger())
			fmt.Printf("stub reservation service listening on %s\n", listen)
			return http.ListenAndServe(listen, s.Router())
		},
	}

	c.Flags().StringVar(&listen, "listen", "", "listen address (default from STUB_LISTEN_ADDR)")
	return c
}
