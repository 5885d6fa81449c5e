package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/reservas-cli/internal/domain/reservation"
)

// Card is the displayable projection of one search result: an availability
// record plus its correlated rate, if any.
type Card struct {
	Title          string
	Level          string
	Capacity       string
	TotalRooms     int
	AvailableRooms int
	OccupiedRooms  int
	Rate           *RateBlock
}

// RateBlock is the pricing section of a card. Absent when no rate
// correlated with the record.
type RateBlock struct {
	Season             string
	NightlyPrice       string
	ExtraOccupantPrice string
}

func BuildCard(avail reservation.Availability, rate *reservation.Rate) Card {
	title := avail.RoomTypeName
	if title == "" {
		title = "Room type"
	}
	capacity := "N/A"
	if avail.OccupantCapacity > 0 {
		capacity = strconv.Itoa(avail.OccupantCapacity)
	}
	c := Card{
		Title:          title,
		Level:          AvailabilityLevel(avail.TotalRooms, avail.AvailableRooms),
		Capacity:       capacity,
		TotalRooms:     avail.TotalRooms,
		AvailableRooms: avail.AvailableRooms,
		OccupiedRooms:  avail.TotalRooms - avail.AvailableRooms,
	}
	if rate != nil {
		c.Rate = &RateBlock{
			Season:             orNA(rate.Season),
			NightlyPrice:       money(rate.BaseNightlyPrice),
			ExtraOccupantPrice: money(rate.ExtraOccupantPrice),
		}
	}
	return c
}

// AvailabilityLevel buckets the available share of rooms: High at 50% and
// above, Medium at 25%, Low below that (and when there are no rooms).
func AvailabilityLevel(total, available int) string {
	if total <= 0 {
		return "Low"
	}
	pct := float64(available) / float64(total) * 100
	switch {
	case pct >= 50:
		return "High"
	case pct >= 25:
		return "Medium"
	default:
		return "Low"
	}
}

func (c Card) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]\n", c.Title, c.Level)
	fmt.Fprintf(&sb, "  Capacity: %s\n", c.Capacity)
	fmt.Fprintf(&sb, "  Rooms: %d/%d available (%d occupied)\n", c.AvailableRooms, c.TotalRooms, c.OccupiedRooms)
	if c.Rate != nil {
		fmt.Fprintf(&sb, "  Season: %s\n", c.Rate.Season)
		fmt.Fprintf(&sb, "  Price per night: %s\n", c.Rate.NightlyPrice)
		fmt.Fprintf(&sb, "  Extra occupant price: %s\n", c.Rate.ExtraOccupantPrice)
	}
	return sb.String()
}
