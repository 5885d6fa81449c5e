package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRate_ExactMatchWinsOverOrder(t *testing.T) {
	avail := Availability{RoomTypeName: "Suite"}
	rates := []Rate{
		{RoomTypeName: "Standard", BaseNightlyPrice: 80},
		{RoomTypeName: "Suite", BaseNightlyPrice: 200},
	}

	got := SelectRate(avail, rates)
	require.NotNil(t, got)
	assert.Equal(t, "Suite", got.RoomTypeName)
	assert.Equal(t, 200.0, got.BaseNightlyPrice)
}

func TestSelectRate_FallsBackToFirstRate(t *testing.T) {
	avail := Availability{RoomTypeName: "Suite"}
	rates := []Rate{
		{RoomTypeName: "Standard"},
		{RoomTypeName: "Family"},
	}

	got := SelectRate(avail, rates)
	require.NotNil(t, got)
	assert.Equal(t, "Standard", got.RoomTypeName)
}

func TestSelectRate_EmptyRates(t *testing.T) {
	assert.Nil(t, SelectRate(Availability{RoomTypeName: "Suite"}, nil))
	assert.Nil(t, SelectRate(Availability{RoomTypeName: "Suite"}, []Rate{}))
}

func TestSelectRate_FirstMatchWins(t *testing.T) {
	avail := Availability{RoomTypeName: "Suite"}
	rates := []Rate{
		{RoomTypeName: "Suite", Season: "Alta"},
		{RoomTypeName: "Suite", Season: "Baja"},
	}

	for i := 0; i < 10; i++ {
		got := SelectRate(avail, rates)
		require.NotNil(t, got)
		assert.Equal(t, "Alta", got.Season)
	}
}
