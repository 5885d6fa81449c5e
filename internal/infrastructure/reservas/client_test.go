package reservas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reservas-cli/internal/config"
	"github.com/example/reservas-cli/internal/domain/reservation"
)

func newTestClient(baseURL string) *Client {
	return New(config.Config{BaseURL: baseURL})
}

func testCriteria() reservation.SearchCriteria {
	start, _ := time.Parse(reservation.DateFormat, "2025-06-01")
	end, _ := time.Parse(reservation.DateFormat, "2025-06-03")
	return reservation.SearchCriteria{HotelID: 1, RoomTypeID: 2, StartDate: start, EndDate: end}
}

func TestClient_Availability(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reservas/disponibilidad", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("idHotel"))
		assert.Equal(t, "2", q.Get("idTipo"))
		assert.Equal(t, "2025-06-01", q.Get("fechaInicio"))
		assert.Equal(t, "2025-06-03", q.Get("fechaFin"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"tipoHabitacion":"Standard","cantidadTotal":20,"cantidadDisponible":15,"capacidadPersonas":2}]`))
	}))
	defer ts.Close()

	got, err := newTestClient(ts.URL+"/api/reservas").Availability(context.Background(), testCriteria())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, reservation.Availability{
		RoomTypeName:     "Standard",
		TotalRooms:       20,
		AvailableRooms:   15,
		OccupantCapacity: 2,
	}, got[0])
}

func TestClient_Availability_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantKind     reservation.TransportKind
		wantReason   string
		friendlyHint string
	}{
		{
			name:         "json message field",
			status:       http.StatusInternalServerError,
			body:         `{"message":"function verificar_disponibilidad_pool does not exist"}`,
			wantKind:     reservation.TransportServerError,
			wantReason:   "function verificar_disponibilidad_pool does not exist",
			friendlyHint: "stored procedures",
		},
		{
			name:       "json error field",
			status:     http.StatusBadRequest,
			body:       `{"error":"missing parameter"}`,
			wantKind:   reservation.TransportGeneric,
			wantReason: "missing parameter",
		},
		{
			name:       "raw body truncated",
			status:     http.StatusBadGateway,
			body:       strings.Repeat("x", 300),
			wantKind:   reservation.TransportGeneric,
			wantReason: strings.Repeat("x", 200) + "...",
		},
		{
			name:         "404 hints at configuration",
			status:       http.StatusNotFound,
			body:         "",
			wantKind:     reservation.TransportNotFound,
			wantReason:   "Error 404: Not Found",
			friendlyHint: "endpoint not found",
		},
		{
			name:       "empty body falls back to status text",
			status:     http.StatusServiceUnavailable,
			body:       "",
			wantKind:   reservation.TransportServerError,
			wantReason: "Error 503: Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := newTestClient(ts.URL+"/api/reservas").Availability(context.Background(), testCriteria())
			var te *reservation.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantKind, te.Kind)
			assert.Equal(t, tt.status, te.Status)
			assert.Equal(t, tt.wantReason, te.Reason)
			if tt.friendlyHint != "" {
				assert.Contains(t, te.Friendly(), tt.friendlyHint)
			}
		})
	}
}

func TestClient_Availability_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := newTestClient(url+"/api/reservas").Availability(context.Background(), testCriteria())
	var te *reservation.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, reservation.TransportUnreachable, te.Kind)
	assert.Contains(t, te.Friendly(), "could not reach")
}

func TestClient_Rates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reservas/tarifas", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2025-06-01", q.Get("fechaInicio"))
		assert.Empty(t, q.Get("fechaFin"))

		w.Write([]byte(`[{"tipoHabitacion":"Standard","temporada":"Low","precioBaseNoche":100,"precioPersonaAdicional":20}]`))
	}))
	defer ts.Close()

	got, err := newTestClient(ts.URL+"/api/reservas").Rates(context.Background(), testCriteria())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Low", got[0].Season)
	assert.Equal(t, 100.0, got[0].BaseNightlyPrice)
}

func TestClient_CalculatePrice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reservas/calcular-precio", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(1), body["idHotel"])
		assert.Equal(t, float64(2), body["idTipo"])
		assert.Equal(t, "2025-06-01", body["fechaInicio"])
		assert.Equal(t, "2025-06-03", body["fechaFin"])
		assert.Equal(t, float64(3), body["numeroPersonas"])
		assert.Equal(t, float64(1), body["cantidadHabitaciones"])

		w.Write([]byte(`{"precioTotal":450,"precioPorNoche":150,"numeroNoches":3,"temporada":"Low","desglose":"{\"cantidadHabitaciones\":1}"}`))
	}))
	defer ts.Close()

	crit := testCriteria()
	req := reservation.Request{
		HotelID:    crit.HotelID,
		RoomTypeID: crit.RoomTypeID,
		StartDate:  crit.StartDate,
		EndDate:    crit.EndDate,
		Occupants:  3,
		Rooms:      1,
	}
	q, err := newTestClient(ts.URL+"/api/reservas").CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 450.0, q.TotalPrice)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, 1, q.DecodeBreakdown().Rooms)
}

func TestClient_CreateReservation_RejectionIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reservas", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"idReserva":null,"exito":false,"mensaje":"Sin disponibilidad","totalCalculado":0}`))
	}))
	defer ts.Close()

	out, err := newTestClient(ts.URL+"/api/reservas").CreateReservation(context.Background(), reservation.Request{
		HotelID: 1, RoomTypeID: 2, StartDate: time.Now(), EndDate: time.Now().AddDate(0, 0, 1), Occupants: 2, Rooms: 1,
	})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Sin disponibilidad", out.Message)
}

func TestClient_CreateReservation_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"idReserva":42,"exito":true,"mensaje":"Reserva creada exitosamente","totalCalculado":440.0}`))
	}))
	defer ts.Close()

	out, err := newTestClient(ts.URL+"/api/reservas").CreateReservation(context.Background(), reservation.Request{
		HotelID: 1, RoomTypeID: 2, StartDate: time.Now(), EndDate: time.Now().AddDate(0, 0, 1), Occupants: 2, Rooms: 1,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 42, out.ReservationID)
	assert.Equal(t, 440.0, out.TotalCharged)
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"precioTotal":`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL+"/api/reservas").CalculatePrice(context.Background(), reservation.Request{})
	var te *reservation.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "malformed price response", te.Reason)
}
