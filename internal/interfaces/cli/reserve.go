package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/reservas-cli/internal/config"
	"github.com/example/reservas-cli/internal/display"
	"github.com/example/reservas-cli/internal/domain/reservation"
	"github.com/example/reservas-cli/internal/infrastructure/reservas"
	"github.com/example/reservas-cli/internal/workflow"
)

func NewReserveCmd() *cobra.Command {
	var (
		hotelID    int
		roomTypeID int
		start      string
		end        string
		occupants  int
		rooms      int
		quoteOnly  bool
		skipQuote  bool
	)

	c := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve rooms: search, quote, then confirm",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if hotelID == 0 {
				hotelID = cfg.DefaultHotelID
			}
			if roomTypeID == 0 {
				roomTypeID = cfg.DefaultRoomTypeID
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}
			crit := reservation.SearchCriteria{
				HotelID:    hotelID,
				RoomTypeID: roomTypeID,
				StartDate:  startDate,
				EndDate:    endDate,
			}

			log := newLogger()
			client := reservas.New(cfg)
			ctx := cmd.Context()

			search := workflow.Search{Service: client, Log: log}
			res, err := search.Execute(ctx, crit)
			if err != nil {
				return friendly(err)
			}
			if res.Empty() {
				return fmt.Errorf("no rooms available for the selected criteria")
			}

			rec := res.Availability[0]
			d := workflow.NewDialog(client, log)
			if err := d.Open(workflow.Origin{
				HotelID:          crit.HotelID,
				RoomTypeID:       crit.RoomTypeID,
				StartDate:        crit.StartDate,
				EndDate:          crit.EndDate,
				MaxRooms:         rec.AvailableRooms,
				OccupantCapacity: rec.OccupantCapacity,
			}); err != nil {
				return err
			}
			defer d.Close()

			fmt.Printf("Reserving %s: up to %d rooms, base capacity %d per room\n",
				rec.RoomTypeName, rec.AvailableRooms, rec.OccupantCapacity)

			if err := d.SetOccupants(occupants); err != nil {
				return err
			}
			if err := d.SetRooms(rooms); err != nil {
				return err
			}

			if !skipQuote {
				fmt.Fprintln(os.Stderr, "Calculating price...")
				q, err := d.CalculatePrice(ctx)
				switch {
				case err == nil:
					fmt.Print(display.FormatBreakdown(q).String())
				default:
					var ve *reservation.ValidationError
					if errors.As(err, &ve) {
						return err
					}
					// The quote is advisory; a failed computation leaves
					// the dialog open, so confirmation may still proceed.
					fmt.Fprintln(os.Stderr, d.Notice())
					if quoteOnly {
						return friendly(err)
					}
				}
			}
			if quoteOnly {
				return nil
			}

			fmt.Fprintln(os.Stderr, "Confirming reservation...")
			out, err := d.Confirm(ctx)
			if err != nil {
				var br *reservation.BusinessRejection
				if errors.As(err, &br) {
					return fmt.Errorf("reservation rejected: %s", br.Message)
				}
				return friendly(err)
			}
			fmt.Printf("Reservation created. ID: %d, Total: $%.2f\n", out.ReservationID, out.TotalCharged)
			return nil
		},
	}

	c.Flags().IntVar(&hotelID, "hotel", 0, "hotel id")
	c.Flags().IntVar(&roomTypeID, "room-type", 0, "room type id")
	c.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	c.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	c.Flags().IntVar(&occupants, "occupants", 0, "number of occupants")
	c.Flags().IntVar(&rooms, "rooms", 0, "number of rooms")
	c.Flags().BoolVar(&quoteOnly, "quote-only", false, "stop after showing the price quote")
	c.Flags().BoolVar(&skipQuote, "skip-quote", false, "confirm without requesting a quote first")
	return c
}
