package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/reservas-cli/internal/domain/reservation"
	"github.com/example/reservas-cli/internal/logger"
)

// State is the position of the reservation dialog.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateQuoting
	StateQuoted
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateQuoting:
		return "quoting"
	case StateQuoted:
		return "quoted"
	case StateConfirming:
		return "confirming"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrDialogBusy is returned when an action arrives while a network
	// call is in flight; the triggering control is disabled until the
	// call resolves.
	ErrDialogBusy = errors.New("dialog: request in flight")

	// ErrDialogClosed is returned for actions that need an open dialog.
	ErrDialogClosed = errors.New("dialog: not open")
)

// DialogService is the slice of the reservation service the dialog needs.
type DialogService interface {
	CalculatePrice(ctx context.Context, req reservation.Request) (reservation.Quote, error)
	CreateReservation(ctx context.Context, req reservation.Request) (reservation.Outcome, error)
}

// Origin is what a selected availability record hands to the dialog:
// the search identifiers plus the record's bounds. MaxRooms caps the room
// count; OccupantCapacity is a display hint only, never enforced.
type Origin struct {
	HotelID          int
	RoomTypeID       int
	StartDate        time.Time
	EndDate          time.Time
	MaxRooms         int
	OccupantCapacity int
}

// Dialog is the reservation workflow: Closed → Open → Quoting → Quoted →
// Confirming, with failed calls returning to a retryable position instead
// of advancing. One instance drives one dialog; Open wipes everything left
// over from the previous one.
type Dialog struct {
	svc DialogService
	log *logger.Logger

	state     State
	session   string
	origin    Origin
	occupants int
	rooms     int
	quote     *reservation.Quote
	notice    string
	outcome   *reservation.Outcome
}

func NewDialog(svc DialogService, log *logger.Logger) *Dialog {
	return &Dialog{svc: svc, log: log, state: StateClosed}
}

func (d *Dialog) State() State   { return d.state }
func (d *Dialog) Busy() bool     { return d.state == StateQuoting || d.state == StateConfirming }
func (d *Dialog) Origin() Origin { return d.origin }
func (d *Dialog) Occupants() int { return d.occupants }
func (d *Dialog) Rooms() int     { return d.rooms }

// Notice is the last failure text to show the user, empty when none.
func (d *Dialog) Notice() string { return d.notice }

// Quote returns the stored advisory quote, or nil before a successful
// price computation.
func (d *Dialog) Quote() *reservation.Quote { return d.quote }

// Outcome returns the confirmation result once the dialog has confirmed.
func (d *Dialog) Outcome() *reservation.Outcome { return d.outcome }

// Open starts a new dialog for the selected availability record. Any state
// from a previous dialog is discarded first.
func (d *Dialog) Open(origin Origin) error {
	if d.Busy() {
		return ErrDialogBusy
	}
	d.reset()
	d.outcome = nil
	d.session = uuid.NewString()
	d.origin = origin
	d.state = StateOpen
	if d.log != nil {
		d.log.LogInfo("dialog %s opened: hotel=%d type=%d rooms<=%d", d.session, origin.HotelID, origin.RoomTypeID, origin.MaxRooms)
	}
	return nil
}

// SetOccupants records the occupant count field. The occupant capacity
// from the origin record is a hint only and does not cap this value.
func (d *Dialog) SetOccupants(n int) error {
	if err := d.editable(); err != nil {
		return err
	}
	d.occupants = n
	return nil
}

// SetRooms records the room count field.
func (d *Dialog) SetRooms(n int) error {
	if err := d.editable(); err != nil {
		return err
	}
	d.rooms = n
	return nil
}

func (d *Dialog) editable() error {
	if d.Busy() {
		return ErrDialogBusy
	}
	if d.state == StateClosed {
		return ErrDialogClosed
	}
	return nil
}

// buildRequest assembles a fresh reservation request from the current
// dialog fields. Called again on every submission since fields may have
// changed since the last one.
func (d *Dialog) buildRequest() (reservation.Request, error) {
	if d.occupants <= 0 || d.rooms <= 0 {
		return reservation.Request{}, &reservation.ValidationError{Message: "please fill in occupants and rooms"}
	}
	if d.rooms > d.origin.MaxRooms {
		return reservation.Request{}, &reservation.ValidationError{
			Message: fmt.Sprintf("at most %d rooms are available", d.origin.MaxRooms),
		}
	}
	return reservation.Request{
		HotelID:    d.origin.HotelID,
		RoomTypeID: d.origin.RoomTypeID,
		StartDate:  d.origin.StartDate,
		EndDate:    d.origin.EndDate,
		Occupants:  d.occupants,
		Rooms:      d.rooms,
	}, nil
}

// CalculatePrice asks for an advisory quote. On failure the dialog returns
// to its previous retryable position with all fields intact.
func (d *Dialog) CalculatePrice(ctx context.Context) (reservation.Quote, error) {
	if d.Busy() {
		return reservation.Quote{}, ErrDialogBusy
	}
	if d.state == StateClosed {
		return reservation.Quote{}, ErrDialogClosed
	}

	req, err := d.buildRequest()
	if err != nil {
		return reservation.Quote{}, err
	}

	prev := d.state
	d.state = StateQuoting
	q, err := d.svc.CalculatePrice(ctx, req)
	if err != nil {
		if prev == StateQuoted && d.quote != nil {
			d.state = StateQuoted
		} else {
			d.state = StateOpen
		}
		d.notice = "could not calculate the price, please try again"
		if d.log != nil {
			d.log.LogErrorf("dialog %s: price computation failed: %v", d.session, err)
		}
		return reservation.Quote{}, err
	}

	d.quote = &q
	d.notice = ""
	d.state = StateQuoted
	return q, nil
}

// Confirm submits the binding booking call. The quote step is optional; a
// fresh request is built from the current fields either way. A business
// rejection reopens the dialog with fields intact so the user can adjust.
func (d *Dialog) Confirm(ctx context.Context) (reservation.Outcome, error) {
	if d.Busy() {
		return reservation.Outcome{}, ErrDialogBusy
	}
	if d.state == StateClosed {
		return reservation.Outcome{}, ErrDialogClosed
	}

	req, err := d.buildRequest()
	if err != nil {
		return reservation.Outcome{}, err
	}

	d.state = StateConfirming
	out, err := d.svc.CreateReservation(ctx, req)
	if err != nil {
		d.state = StateOpen
		d.notice = "could not create the reservation, please try again"
		if d.log != nil {
			d.log.LogErrorf("dialog %s: reservation call failed: %v", d.session, err)
		}
		return reservation.Outcome{}, err
	}

	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "the reservation could not be created"
		}
		d.state = StateOpen
		d.notice = msg
		if d.log != nil {
			d.log.LogInfo("dialog %s: reservation rejected: %s", d.session, msg)
		}
		return out, &reservation.BusinessRejection{Message: msg}
	}

	d.outcome = &out
	session := d.session
	d.reset()
	if d.log != nil {
		d.log.LogInfo("dialog %s: reservation confirmed id=%d total=%.2f", session, out.ReservationID, out.TotalCharged)
	}
	return out, nil
}

// Close abandons the dialog, explicitly or by clicking outside of it.
// Request fields, quote and notices are always wiped so nothing leaks into
// the next Open.
func (d *Dialog) Close() {
	d.reset()
}

// reset clears everything except the terminal outcome, which callers may
// still want to display after the dialog closes.
func (d *Dialog) reset() {
	d.state = StateClosed
	d.session = ""
	d.origin = Origin{}
	d.occupants = 0
	d.rooms = 0
	d.quote = nil
	d.notice = ""
}
