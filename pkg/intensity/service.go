package intensity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carbonwatch/carbon-intensity-client/pkg/client"
	"github.com/carbonwatch/carbon-intensity-client/pkg/target"
	"github.com/carbonwatch/carbon-intensity-client/pkg/timerange"
)

// Service answers carbon intensity queries against the API.
type Service struct {
	client *client.Client
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a new intensity service on top of an API client.
func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
		logger: log.With().Str("component", "intensity").Logger(),
		now:    time.Now,
	}
}

// SetClock overrides the service clock (for testing).
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CurrentIntensity returns the current forecast value for a target.
//
// Postcode and region targets query the windowless regional endpoints
// (/regional/postcode/{code}, /regional/regionid/{id}); the national
// aggregate uses /intensity. The value is the first entry of the first
// returned group; an empty response yields ErrNoData.
func (s *Service) CurrentIntensity(ctx context.Context, tgt target.Target) (int, error) {
	if tgt.Kind() == target.KindNational {
		var payload nationalPayload
		if err := s.client.GetJSON(ctx, "/intensity", &payload); err != nil {
			return 0, err
		}
		if len(payload.Data) == 0 {
			return 0, fmt.Errorf("national intensity: %w", ErrNoData)
		}
		return payload.Data[0].Intensity.Forecast, nil
	}

	segment, err := s.targetSegment(tgt)
	if err != nil {
		return 0, err
	}

	var payload groupsPayload
	if err := s.client.GetJSON(ctx, "/regional/"+segment, &payload); err != nil {
		return 0, err
	}

	if len(payload.Data) == 0 {
		return 0, fmt.Errorf("intensity for %s: %w", tgt, ErrNoData)
	}
	entries := payload.Data[0].Data
	if len(entries) == 0 {
		return 0, fmt.Errorf("intensity data for %s: %w", tgt, ErrNoData)
	}
	return entries[0].Intensity.Forecast, nil
}

// Intensities returns half-hourly forecasts for a target over a date
// range. Dates are YYYY-MM-DDThh:mmZ strings, with YYYY-MM-DD
// tolerated; an empty end defaults to now. The range is decomposed
// into API-acceptable windows, fetched concurrently and merged in
// chronological order. Any window failure fails the whole call.
func (s *Service) Intensities(ctx context.Context, tgt target.Target, start, end string) ([]Measurement, error) {
	if tgt.Kind() == target.KindNational {
		return nil, &InvalidTargetError{
			Target: tgt,
			Reason: "ranged queries need a region or postcode, national supports the current value only",
		}
	}

	segment, err := s.targetSegment(tgt)
	if err != nil {
		return nil, err
	}

	windows, err := timerange.Split(start, end, timerange.DefaultBounds(s.now()))
	if err != nil {
		return nil, err
	}

	rangeQueriesTotal.Inc()
	s.logger.Debug().
		Stringer("target", tgt).
		Int("windows", len(windows)).
		Msg("Starting ranged intensity query")

	return s.fetchWindows(ctx, segment, windows)
}

// targetSegment renders the target-specific path segment for regional
// queries, validating postcode length on the way.
func (s *Service) targetSegment(tgt target.Target) (string, error) {
	switch tgt.Kind() {
	case target.KindPostcode:
		code := tgt.Postcode()
		if len(code) < 2 || len(code) > 4 {
			return "", &InvalidTargetError{Target: tgt, Reason: "postcode must be 2 to 4 characters"}
		}
		return "postcode/" + code, nil
	case target.KindRegion:
		return fmt.Sprintf("regionid/%d", tgt.Region()), nil
	default:
		return "", &InvalidTargetError{Target: tgt, Reason: "no regional path for this target"}
	}
}
