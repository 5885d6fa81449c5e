package reservas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/reservas-cli/internal/config"
	"github.com/example/reservas-cli/internal/domain/reservation"
)

// Client talks to the hotel reservation service under /api/reservas.
type Client struct {
	hc   *http.Client
	base string
}

func New(cfg config.Config) *Client {
	return &Client{
		hc:   &http.Client{Timeout: cfg.RequestTimeout},
		base: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Ping issues a minimal availability lookup to verify the service is
// reachable and the base path is configured correctly.
func (c *Client) Ping(ctx context.Context) error {
	today := time.Now()
	_, err := c.Availability(ctx, reservation.SearchCriteria{
		HotelID:    1,
		RoomTypeID: 1,
		StartDate:  today,
		EndDate:    today.AddDate(0, 0, 1),
	})
	return err
}

// Availability runs the mandatory availability lookup for a search.
func (c *Client) Availability(ctx context.Context, crit reservation.SearchCriteria) ([]reservation.Availability, error) {
	params := url.Values{}
	params.Set("idHotel", strconv.Itoa(crit.HotelID))
	params.Set("idTipo", strconv.Itoa(crit.RoomTypeID))
	params.Set("fechaInicio", crit.StartDate.Format(reservation.DateFormat))
	params.Set("fechaFin", crit.EndDate.Format(reservation.DateFormat))

	status, body, err := c.do(ctx, http.MethodGet, c.base+"/disponibilidad?"+params.Encode(), nil)
	if err != nil {
		return nil, unreachable(err)
	}
	if status != http.StatusOK {
		return nil, transportError(status, body)
	}
	var out []reservation.Availability
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &reservation.TransportError{Status: status, Reason: "malformed availability response"}
	}
	return out, nil
}

// Rates runs the rate lookup for the same hotel, room type and start date.
// Callers treat failures as best-effort and proceed with no rates.
func (c *Client) Rates(ctx context.Context, crit reservation.SearchCriteria) ([]reservation.Rate, error) {
	params := url.Values{}
	params.Set("idHotel", strconv.Itoa(crit.HotelID))
	params.Set("idTipo", strconv.Itoa(crit.RoomTypeID))
	params.Set("fechaInicio", crit.StartDate.Format(reservation.DateFormat))

	status, body, err := c.do(ctx, http.MethodGet, c.base+"/tarifas?"+params.Encode(), nil)
	if err != nil {
		return nil, unreachable(err)
	}
	if status != http.StatusOK {
		return nil, transportError(status, body)
	}
	var out []reservation.Rate
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &reservation.TransportError{Status: status, Reason: "malformed rate response"}
	}
	return out, nil
}

// CalculatePrice asks the service for an advisory quote. The quote does not
// reserve inventory.
func (c *Client) CalculatePrice(ctx context.Context, req reservation.Request) (reservation.Quote, error) {
	b, err := json.Marshal(newWireRequest(req))
	if err != nil {
		return reservation.Quote{}, fmt.Errorf("encode price request: %w", err)
	}
	status, body, err := c.do(ctx, http.MethodPost, c.base+"/calcular-precio", b)
	if err != nil {
		return reservation.Quote{}, unreachable(err)
	}
	if status != http.StatusOK {
		return reservation.Quote{}, transportError(status, body)
	}
	var q reservation.Quote
	if err := json.Unmarshal(body, &q); err != nil {
		return reservation.Quote{}, &reservation.TransportError{Status: status, Reason: "malformed price response"}
	}
	return q, nil
}

// CreateReservation submits the binding booking call. A well-formed
// response with exito=false is returned as a normal Outcome, not an error.
func (c *Client) CreateReservation(ctx context.Context, req reservation.Request) (reservation.Outcome, error) {
	b, err := json.Marshal(newWireRequest(req))
	if err != nil {
		return reservation.Outcome{}, fmt.Errorf("encode reservation request: %w", err)
	}
	status, body, err := c.do(ctx, http.MethodPost, c.base, b)
	if err != nil {
		return reservation.Outcome{}, unreachable(err)
	}
	if status != http.StatusOK {
		return reservation.Outcome{}, transportError(status, body)
	}
	var out reservation.Outcome
	if err := json.Unmarshal(body, &out); err != nil {
		return reservation.Outcome{}, &reservation.TransportError{Status: status, Reason: "malformed reservation response"}
	}
	return out, nil
}

// wireRequest matches the field names the service expects.
type wireRequest struct {
	IDHotel              int    `json:"idHotel"`
	IDTipo               int    `json:"idTipo"`
	FechaInicio          string `json:"fechaInicio"`
	FechaFin             string `json:"fechaFin"`
	NumeroPersonas       int    `json:"numeroPersonas"`
	CantidadHabitaciones int    `json:"cantidadHabitaciones"`
}

func newWireRequest(r reservation.Request) wireRequest {
	return wireRequest{
		IDHotel:              r.HotelID,
		IDTipo:               r.RoomTypeID,
		FechaInicio:          r.StartDate.Format(reservation.DateFormat),
		FechaFin:             r.EndDate.Format(reservation.DateFormat),
		NumeroPersonas:       r.Occupants,
		CantidadHabitaciones: r.Rooms,
	}
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

func unreachable(err error) *reservation.TransportError {
	return &reservation.TransportError{
		Kind:   reservation.TransportUnreachable,
		Reason: err.Error(),
	}
}

func transportError(status int, body []byte) *reservation.TransportError {
	kind := reservation.TransportGeneric
	switch {
	case status == http.StatusNotFound:
		kind = reservation.TransportNotFound
	case status >= http.StatusInternalServerError:
		kind = reservation.TransportServerError
	}
	return &reservation.TransportError{Kind: kind, Status: status, Reason: reasonFromBody(status, body)}
}

// reasonFromBody mirrors how the service's own browser client derives a
// displayable reason: a JSON message or error field if present, else the
// raw body truncated, else the status text.
func reasonFromBody(status int, body []byte) string {
	var r struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &r) == nil {
		if r.Message != "" {
			return r.Message
		}
		if r.Error != "" {
			return r.Error
		}
	}
	s := strings.TrimSpace(string(body))
	if s != "" {
		if len(s) > 200 {
			s = s[:200] + "..."
		}
		return s
	}
	return fmt.Sprintf("Error %d: %s", status, http.StatusText(status))
}
