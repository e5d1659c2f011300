package intensity

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/carbonwatch/carbon-intensity-client/pkg/timerange"
)

// Prometheus metrics for ranged aggregation.
var (
	windowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carbon_windows_total",
		Help: "Total window fetches by outcome",
	}, []string{"outcome"})

	rangeQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbon_range_queries_total",
		Help: "Total ranged aggregation calls",
	})
)

// windowResult carries one window's measurements back to the joiner.
type windowResult struct {
	index int
	data  []Measurement
	err   error
}

// fetchWindows issues one concurrent fetch per window and merges the
// results in window order. The fan-out is unbounded: the splitter emits
// at most a few dozen windows even for multi-year ranges.
//
// The join is all-or-nothing. Every in-flight fetch runs to completion
// (there is no shared state to protect and nothing to leak) but a
// single failure discards all results and surfaces the failing
// window's error, preferring the earliest window when several fail.
func (s *Service) fetchWindows(ctx context.Context, segment string, windows []timerange.Window) ([]Measurement, error) {
	start := time.Now()

	results := make([][]Measurement, len(windows))
	resultCh := make(chan windowResult, len(windows))

	for i, w := range windows {
		go func(i int, w timerange.Window) {
			data, err := s.fetchWindow(ctx, segment, w)
			resultCh <- windowResult{index: i, data: data, err: err}
		}(i, w)
	}

	firstErrIndex := -1
	var firstErr error
	for range windows {
		res := <-resultCh
		if res.err != nil {
			windowsTotal.WithLabelValues("error").Inc()
			if firstErrIndex < 0 || res.index < firstErrIndex {
				firstErrIndex = res.index
				firstErr = res.err
			}
			continue
		}
		windowsTotal.WithLabelValues("ok").Inc()
		results[res.index] = res.data
	}

	if firstErr != nil {
		w := windows[firstErrIndex]
		s.logger.Warn().
			Err(firstErr).
			Str("from", timerange.FormatInstant(w.From)).
			Str("to", timerange.FormatInstant(w.To)).
			Msg("Window fetch failed, discarding all results")
		return nil, fmt.Errorf("window %s to %s: %w",
			timerange.FormatInstant(w.From), timerange.FormatInstant(w.To), firstErr)
	}

	var merged []Measurement
	for _, data := range results {
		merged = append(merged, data...)
	}

	s.logger.Debug().
		Int("windows", len(windows)).
		Int("measurements", len(merged)).
		Dur("duration", time.Since(start)).
		Msg("Ranged query complete")

	return merged, nil
}

// fetchWindow queries one window. Both endpoints are shifted forward by
// one minute before formatting: the API treats window bounds as
// exclusive-from/inclusive-to, and without the shift the boundary
// bucket is either dropped or served twice by adjacent windows.
func (s *Service) fetchWindow(ctx context.Context, segment string, w timerange.Window) ([]Measurement, error) {
	from := timerange.FormatInstant(w.From.Add(time.Minute))
	to := timerange.FormatInstant(w.To.Add(time.Minute))

	path := fmt.Sprintf("/regional/intensity/%s/%s/%s", from, to, segment)

	var payload windowPayload
	if err := s.client.GetJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	return toMeasurements(payload.Data.Data)
}
