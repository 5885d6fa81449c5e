package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/reservas-cli/internal/config"
	"github.com/example/reservas-cli/internal/display"
	"github.com/example/reservas-cli/internal/domain/reservation"
	"github.com/example/reservas-cli/internal/infrastructure/reservas"
	"github.com/example/reservas-cli/internal/workflow"
)

func NewSearchCmd() *cobra.Command {
	var (
		hotelID    int
		roomTypeID int
		start      string
		end        string
	)

	c := &cobra.Command{
		Use:   "search",
		Short: "Search room availability and rates",
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

			search := workflow.Search{
				Service: reservas.New(cfg),
				Log:     newLogger(),
				OnLoading: func(v bool) {
					if v {
						fmt.Fprintln(os.Stderr, "Searching availability...")
					}
				},
			}
			res, err := search.Execute(cmd.Context(), crit)
			if err != nil {
				return friendly(err)
			}
			if res.Empty() {
				fmt.Println("No rooms available for the selected criteria. Try other dates or parameters.")
				return nil
			}
			for _, a := range res.Availability {
				rate := reservation.SelectRate(a, res.Rates)
				fmt.Println(display.BuildCard(a, rate).String())
			}
			return nil
		},
	}

	c.Flags().IntVar(&hotelID, "hotel", 0, "hotel id")
	c.Flags().IntVar(&roomTypeID, "room-type", 0, "room type id")
	c.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	c.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	return c
}
