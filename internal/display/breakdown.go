package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/reservas-cli/internal/domain/reservation"
)

// Line is one labeled row of a rendered summary.
type Line struct {
	Label string
	Value string
}

// Summary is the displayable projection of a price quote.
type Summary struct {
	Lines []Line
	Total string
}

// FormatBreakdown projects a quote into a display summary. Missing numbers
// render as 0, a missing season as "N/A". The room-subtotal block appears
// only when the breakdown carries a room count, the extra-occupant block
// only when the extra-occupant count is greater than zero. An undecodable
// breakdown payload simply omits both blocks.
func FormatBreakdown(q reservation.Quote) Summary {
	lines := []Line{
		{Label: "Price per night", Value: money(q.NightlyPrice)},
		{Label: "Nights", Value: strconv.Itoa(q.Nights)},
		{Label: "Season", Value: orNA(q.Season)},
	}

	b := q.DecodeBreakdown()
	if b.Rooms > 0 {
		lines = append(lines,
			Line{Label: "Rooms", Value: strconv.Itoa(b.Rooms)},
			Line{Label: "Room subtotal", Value: money(b.RoomSubtotal)},
		)
	}
	if b.ExtraOccupants > 0 {
		lines = append(lines,
			Line{Label: "Extra occupants", Value: strconv.Itoa(b.ExtraOccupants)},
			Line{Label: "Extra occupant price", Value: money(b.ExtraOccupantPrice)},
			Line{Label: "Extra occupant subtotal", Value: money(b.ExtraOccupantSubtotal)},
		)
	}

	return Summary{Lines: lines, Total: money(q.TotalPrice)}
}

func (s Summary) String() string {
	var sb strings.Builder
	for _, ln := range s.Lines {
		fmt.Fprintf(&sb, "%s: %s\n", ln.Label, ln.Value)
	}
	fmt.Fprintf(&sb, "TOTAL: %s\n", s.Total)
	return sb.String()
}

// money renders a monetary amount with exactly two fractional digits.
func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
