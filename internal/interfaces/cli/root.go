package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/reservas-cli/internal/domain/reservation"
	"github.com/example/reservas-cli/internal/logger"
)

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservacli",
		Short: "Hotel reservation client",
	}
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewReserveCmd())
	cmd.AddCommand(NewPingCmd())
	cmd.AddCommand(NewServeStubCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func newLogger() *logger.Logger {
	return logger.New(log.New(os.Stderr, "", log.LstdFlags))
}

// parseDate parses a YYYY-MM-DD flag value. An empty value parses to the
// zero time so the workflow's own presence validation can report it.
func parseDate(flag, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(reservation.DateFormat, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s (want YYYY-MM-DD)", flag)
	}
	return t, nil
}

// friendly rewrites transport errors into their operator-facing text.
func friendly(err error) error {
	var te *reservation.TransportError
	if errors.As(err, &te) {
		return errors.New(te.Friendly())
	}
	return err
}
