package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/example/reservas-cli/internal/domain/reservation"
	"github.com/example/reservas-cli/internal/logger"
)

// SearchService is the slice of the reservation service a search needs.
type SearchService interface {
	Availability(ctx context.Context, crit reservation.SearchCriteria) ([]reservation.Availability, error)
	Rates(ctx context.Context, crit reservation.SearchCriteria) ([]reservation.Rate, error)
}

// Search validates criteria, runs the availability lookup and enriches the
// result with rates. Rates are best-effort: a failed rate lookup never
// fails the search.
type Search struct {
	Service SearchService
	Log     *logger.Logger

	// OnLoading is called with true when the search enters its in-flight
	// state and with false when it leaves, on every path. Optional.
	OnLoading func(bool)

	// Now overrides the clock used for the date-entry checks. Optional.
	Now func() time.Time
}

// Results holds one search's result set. The records are owned by this
// search and discarded when the next one runs.
type Results struct {
	Availability []reservation.Availability
	Rates        []reservation.Rate
}

// Empty reports a successful search that matched nothing. This is a
// distinct outcome from a failure.
func (r Results) Empty() bool { return len(r.Availability) == 0 }

func (s Search) Execute(ctx context.Context, crit reservation.SearchCriteria) (Results, error) {
	if s.Service == nil {
		return Results{}, fmt.Errorf("service is nil")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if err := crit.Validate(now()); err != nil {
		return Results{}, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	avail, err := s.Service.Availability(ctx, crit)
	if err != nil {
		return Results{}, err
	}

	rates, err := s.Service.Rates(ctx, crit)
	if err != nil {
		if s.Log != nil {
			s.Log.LogWarnf("could not fetch rates: %v", err)
		}
		rates = nil
	}

	return Results{Availability: avail, Rates: rates}, nil
}

func (s Search) setLoading(v bool) {
	if s.OnLoading != nil {
		s.OnLoading(v)
	}
}
