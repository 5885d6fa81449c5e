package reservation

import (
	"encoding/json"
	"time"
)

// DateFormat is the wire format for calendar dates (ISO, date only).
const DateFormat = "2006-01-02"

// SearchCriteria is what the user submits to search availability.
// Immutable once submitted; a new search builds a new value.
type SearchCriteria struct {
	HotelID    int
	RoomTypeID int
	StartDate  time.Time
	EndDate    time.Time
}

// Validate enforces the entry rules before any network call is made:
// all fields present, end date strictly after start date, and neither
// date before today. today is passed in so callers control the clock.
func (c SearchCriteria) Validate(today time.Time) error {
	if c.HotelID <= 0 || c.RoomTypeID <= 0 || c.StartDate.IsZero() || c.EndDate.IsZero() {
		return &ValidationError{Message: "please fill in all search fields"}
	}
	day := today.Truncate(24 * time.Hour)
	if c.StartDate.Before(day) {
		return &ValidationError{Message: "start date must not be in the past"}
	}
	if !c.EndDate.After(c.StartDate) {
		return &ValidationError{Message: "end date must be after start date"}
	}
	return nil
}

// Availability is one room-type configuration matching a search.
type Availability struct {
	RoomTypeName     string `json:"tipoHabitacion"`
	TotalRooms       int    `json:"cantidadTotal"`
	AvailableRooms   int    `json:"cantidadDisponible"`
	OccupantCapacity int    `json:"capacidadPersonas"`
}

// Rate carries the nightly pricing terms for a room type and season.
type Rate struct {
	ID                 int     `json:"idTarifa"`
	Hotel              string  `json:"hotel"`
	RoomTypeName       string  `json:"tipoHabitacion"`
	Season             string  `json:"temporada"`
	BaseNightlyPrice   float64 `json:"precioBaseNoche"`
	ExtraOccupantPrice float64 `json:"precioPersonaAdicional"`
}

// Request is a reservation request as submitted to the price-quote and
// booking endpoints. Built incrementally while the dialog is open.
type Request struct {
	HotelID    int
	RoomTypeID int
	StartDate  time.Time
	EndDate    time.Time
	Occupants  int
	Rooms      int
}

// Quote is the advisory price computation for a Request. It does not
// reserve inventory. Breakdown arrives as a serialized JSON payload.
type Quote struct {
	TotalPrice   float64 `json:"precioTotal"`
	NightlyPrice float64 `json:"precioPorNoche"`
	Nights       int     `json:"numeroNoches"`
	Season       string  `json:"temporada"`
	Breakdown    string  `json:"desglose"`
}

// Breakdown is the decoded form of Quote.Breakdown.
type Breakdown struct {
	Rooms                 int     `json:"cantidadHabitaciones"`
	RoomSubtotal          float64 `json:"subtotalHabitaciones"`
	ExtraOccupants        int     `json:"personasExtra"`
	ExtraOccupantPrice    float64 `json:"precioPersonaAdicional"`
	ExtraOccupantSubtotal float64 `json:"subtotalPersonasExtra"`
}

// DecodeBreakdown decodes the serialized breakdown payload. A missing or
// undecodable payload yields the zero Breakdown; that is a presentation
// degradation, not an error, so no error is returned.
func (q Quote) DecodeBreakdown() Breakdown {
	var b Breakdown
	if q.Breakdown == "" {
		return b
	}
	if err := json.Unmarshal([]byte(q.Breakdown), &b); err != nil {
		return Breakdown{}
	}
	return b
}

// Outcome is the terminal result of a reservation creation call.
// ReservationID and TotalCharged are meaningful only when Success is true;
// Message carries the server-supplied reason otherwise.
type Outcome struct {
	ReservationID int     `json:"idReserva"`
	Success       bool    `json:"exito"`
	Message       string  `json:"mensaje"`
	TotalCharged  float64 `json:"totalCalculado"`
}
