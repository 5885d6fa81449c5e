package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reservas-cli/internal/domain/reservation"
)

func TestBuildCard_WithCorrelatedRate(t *testing.T) {
	avail := reservation.Availability{
		RoomTypeName:     "Standard",
		TotalRooms:       20,
		AvailableRooms:   15,
		OccupantCapacity: 2,
	}
	rate := &reservation.Rate{
		RoomTypeName:       "Standard",
		Season:             "Low",
		BaseNightlyPrice:   100,
		ExtraOccupantPrice: 20,
	}

	c := BuildCard(avail, rate)
	assert.Equal(t, "Standard", c.Title)
	assert.Equal(t, "High", c.Level)
	assert.Equal(t, 15, c.AvailableRooms)
	assert.Equal(t, 20, c.TotalRooms)
	assert.Equal(t, 5, c.OccupiedRooms)
	require.NotNil(t, c.Rate)
	assert.Equal(t, "Low", c.Rate.Season)
	assert.Equal(t, "$100.00", c.Rate.NightlyPrice)
	assert.Equal(t, "$20.00", c.Rate.ExtraOccupantPrice)

	out := c.String()
	assert.Contains(t, out, "15/20 available")
	assert.Contains(t, out, "Season: Low")
	assert.Contains(t, out, "Price per night: $100.00")
}

func TestBuildCard_WithoutRate(t *testing.T) {
	c := BuildCard(reservation.Availability{RoomTypeName: "Suite", TotalRooms: 10, AvailableRooms: 3}, nil)
	assert.Nil(t, c.Rate)
	assert.NotContains(t, c.String(), "Season")
}

func TestBuildCard_Defaults(t *testing.T) {
	c := BuildCard(reservation.Availability{}, nil)
	assert.Equal(t, "Room type", c.Title)
	assert.Equal(t, "N/A", c.Capacity)
	assert.Equal(t, "Low", c.Level)
}

func TestAvailabilityLevel(t *testing.T) {
	tests := []struct {
		total, available int
		want             string
	}{
		{20, 15, "High"},
		{10, 5, "High"},
		{20, 5, "Medium"},
		{20, 4, "Low"},
		{20, 0, "Low"},
		{0, 0, "Low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AvailabilityLevel(tt.total, tt.available), "total=%d available=%d", tt.total, tt.available)
	}
}
