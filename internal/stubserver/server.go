package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/example/reservas-cli/internal/domain/reservation"
	"github.com/example/reservas-cli/internal/logger"
)

// Server is an in-memory stand-in for the hotel reservation service. It
// implements the four /api/reservas endpoints with the same pricing and
// inventory semantics, so the client can be exercised end to end without
// the real backend.
type Server struct {
	mu       sync.Mutex
	log      *logger.Logger
	hotels   map[int]*hotel
	bookings []booking
	nextID   int
}

type hotel struct {
	name  string
	types map[int]*roomType
}

type roomType struct {
	name          string
	capacity      int
	total         int
	baseNightly   float64
	extraOccupant float64
}

type booking struct {
	hotelID int
	typeID  int
	rooms   int
	start   time.Time
	end     time.Time
}

// highSeasonMultiplier is applied to base prices in the high season.
const highSeasonMultiplier = 1.3

func New(log *logger.Logger) *Server {
	return &Server{
		log:    log,
		nextID: 1,
		hotels: map[int]*hotel{
			1: {
				name: "Hotel Central",
				types: map[int]*roomType{
					1: {name: "Habitación Estándar", capacity: 2, total: 20, baseNightly: 100, extraOccupant: 20},
					2: {name: "Suite Deluxe", capacity: 4, total: 10, baseNightly: 250, extraOccupant: 40},
					3: {name: "Habitación Familiar", capacity: 6, total: 15, baseNightly: 180, extraOccupant: 25},
				},
			},
		},
	}
}

// Router wires the endpoints under /api/reservas plus a health check.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/reservas/disponibilidad", s.handleAvailability).Methods(http.MethodGet)
	r.HandleFunc("/api/reservas/tarifas", s.handleRates).Methods(http.MethodGet)
	r.HandleFunc("/api/reservas/calcular-precio", s.handleCalculatePrice).Methods(http.MethodPost)
	r.HandleFunc("/api/reservas", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	return r
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	hotelID, typeID, err := queryIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := queryDate(r, "fechaInicio")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := queryDate(r, "fechaFin")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []reservation.Availability{}
	if rt := s.roomTypeLocked(hotelID, typeID); rt != nil {
		out = append(out, reservation.Availability{
			RoomTypeName:     rt.name,
			TotalRooms:       rt.total,
			AvailableRooms:   rt.total - s.bookedLocked(hotelID, typeID, start, end),
			OccupantCapacity: rt.capacity,
		})
	}
	s.log.LogInfo("availability hotel=%d type=%d results=%d", hotelID, typeID, len(out))
	writeJSON(w, out)
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	hotelID, typeID, err := queryIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := queryDate(r, "fechaInicio")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []reservation.Rate{}
	h := s.hotels[hotelID]
	if rt := s.roomTypeLocked(hotelID, typeID); rt != nil {
		out = append(out, reservation.Rate{
			ID:                 typeID,
			Hotel:              h.name,
			RoomTypeName:       rt.name,
			Season:             season(start),
			BaseNightlyPrice:   seasonal(rt.baseNightly, start),
			ExtraOccupantPrice: rt.extraOccupant,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleCalculatePrice(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quote, err := s.quoteLocked(req)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, quote)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quote, err := s.quoteLocked(req)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	available := 0
	if rt := s.roomTypeLocked(req.hotelID, req.typeID); rt != nil {
		available = rt.total - s.bookedLocked(req.hotelID, req.typeID, req.start, req.end)
	}
	if req.rooms > available {
		s.log.LogInfo("reservation rejected hotel=%d type=%d rooms=%d available=%d", req.hotelID, req.typeID, req.rooms, available)
		writeJSON(w, reservation.Outcome{Success: false, Message: "Sin disponibilidad"})
		return
	}

	s.bookings = append(s.bookings, booking{
		hotelID: req.hotelID,
		typeID:  req.typeID,
		rooms:   req.rooms,
		start:   req.start,
		end:     req.end,
	})
	id := s.nextID
	s.nextID++
	s.log.LogInfo("reservation created id=%d total=%.2f", id, quote.TotalPrice)
	writeJSON(w, reservation.Outcome{
		ReservationID: id,
		Success:       true,
		Message:       "Reserva creada exitosamente",
		TotalCharged:  quote.TotalPrice,
	})
}

// quoteLocked reproduces the pricing of the backend's calcular_precio_reserva
// function: nights times base price per room, plus a surcharge per occupant
// above the rooms' base capacity.
func (s *Server) quoteLocked(req stubRequest) (reservation.Quote, error) {
	rt := s.roomTypeLocked(req.hotelID, req.typeID)
	if rt == nil {
		return reservation.Quote{}, fmt.Errorf("unknown hotel or room type")
	}
	nights := int(req.end.Sub(req.start).Hours() / 24)
	if nights <= 0 {
		return reservation.Quote{}, fmt.Errorf("end date must be after start date")
	}

	base := seasonal(rt.baseNightly, req.start)
	extras := req.occupants - rt.capacity*req.rooms
	if extras < 0 {
		extras = 0
	}
	nightly := base*float64(req.rooms) + float64(extras)*rt.extraOccupant
	total := nightly * float64(nights)

	breakdown, _ := json.Marshal(reservation.Breakdown{
		Rooms:                 req.rooms,
		RoomSubtotal:          base * float64(req.rooms) * float64(nights),
		ExtraOccupants:        extras,
		ExtraOccupantPrice:    rt.extraOccupant,
		ExtraOccupantSubtotal: float64(extras) * rt.extraOccupant * float64(nights),
	})

	return reservation.Quote{
		TotalPrice:   total,
		NightlyPrice: nightly,
		Nights:       nights,
		Season:       season(req.start),
		Breakdown:    string(breakdown),
	}, nil
}

func (s *Server) roomTypeLocked(hotelID, typeID int) *roomType {
	h := s.hotels[hotelID]
	if h == nil {
		return nil
	}
	return h.types[typeID]
}

func (s *Server) bookedLocked(hotelID, typeID int, start, end time.Time) int {
	n := 0
	for _, b := range s.bookings {
		if b.hotelID == hotelID && b.typeID == typeID && b.start.Before(end) && start.Before(b.end) {
			n += b.rooms
		}
	}
	return n
}

// season mirrors the backend's temporada tables: high season in the
// northern summer months and December, low season otherwise.
func season(d time.Time) string {
	switch d.Month() {
	case time.June, time.July, time.August, time.December:
		return "Alta"
	default:
		return "Baja"
	}
}

func seasonal(base float64, d time.Time) float64 {
	if season(d) == "Alta" {
		return base * highSeasonMultiplier
	}
	return base
}

type stubRequest struct {
	hotelID   int
	typeID    int
	start     time.Time
	end       time.Time
	occupants int
	rooms     int
}

func decodeRequest(r *http.Request) (stubRequest, error) {
	var w struct {
		IDHotel              int    `json:"idHotel"`
		IDTipo               int    `json:"idTipo"`
		FechaInicio          string `json:"fechaInicio"`
		FechaFin             string `json:"fechaFin"`
		NumeroPersonas       int    `json:"numeroPersonas"`
		CantidadHabitaciones int    `json:"cantidadHabitaciones"`
	}
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil {
		return stubRequest{}, fmt.Errorf("invalid request body")
	}
	if w.IDHotel <= 0 || w.IDTipo <= 0 || w.NumeroPersonas <= 0 || w.CantidadHabitaciones <= 0 {
		return stubRequest{}, fmt.Errorf("idHotel, idTipo, numeroPersonas and cantidadHabitaciones are required and must be positive")
	}
	start, err := time.Parse(reservation.DateFormat, w.FechaInicio)
	if err != nil {
		return stubRequest{}, fmt.Errorf("invalid fechaInicio (want YYYY-MM-DD)")
	}
	end, err := time.Parse(reservation.DateFormat, w.FechaFin)
	if err != nil {
		return stubRequest{}, fmt.Errorf("invalid fechaFin (want YYYY-MM-DD)")
	}
	return stubRequest{
		hotelID:   w.IDHotel,
		typeID:    w.IDTipo,
		start:     start,
		end:       end,
		occupants: w.NumeroPersonas,
		rooms:     w.CantidadHabitaciones,
	}, nil
}

func queryIDs(r *http.Request) (hotelID, typeID int, err error) {
	hotelID, err = queryInt(r, "idHotel")
	if err != nil {
		return 0, 0, err
	}
	typeID, err = queryInt(r, "idTipo")
	if err != nil {
		return 0, 0, err
	}
	return hotelID, typeID, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func queryDate(r *http.Request, key string) (time.Time, error) {
	t, err := time.Parse(reservation.DateFormat, r.URL.Query().Get(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s (want YYYY-MM-DD)", key)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
