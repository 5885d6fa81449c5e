package reservation

import (
	"fmt"
	"net/http"
)

// ValidationError is a local, pre-network failure: the input is missing or
// inconsistent and the user can fix it without talking to the server.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportKind classifies a TransportError for friendlier display.
type TransportKind int

const (
	TransportGeneric TransportKind = iota
	TransportUnreachable
	TransportServerError
	TransportNotFound
)

// TransportError is a network-level failure or a non-success HTTP status.
// Reason is derived from the response body when one was parseable.
type TransportError struct {
	Kind   TransportKind
	Status int
	Reason string
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("reservation service: %s (status=%d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("reservation service: %s", e.Reason)
}

// Friendly returns the operator-facing text for the error, with special
// cases for unreachable servers, 500s and 404s.
func (e *TransportError) Friendly() string {
	switch e.Kind {
	case TransportUnreachable:
		return "could not reach the reservation service; check that the server is running and the base URL is correct"
	case TransportServerError:
		return "the reservation service reported an internal error; check that the stored procedures exist in the database and the parameters are correct"
	case TransportNotFound:
		return "endpoint not found; check the reservation service configuration and base path"
	default:
		if e.Reason != "" {
			return e.Reason
		}
		return http.StatusText(e.Status)
	}
}

// BusinessRejection is a well-formed response refusing the operation, e.g.
// a reservation answered with exito=false. It always carries the
// server-supplied reason and is never fatal to the workflow.
type BusinessRejection struct {
	Message string
}

func (e *BusinessRejection) Error() string { return e.Message }
