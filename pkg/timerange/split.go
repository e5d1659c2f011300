package timerange

import (
	"errors"
	"fmt"
	"time"
)

// maxWindowSpan is the longest range the API accepts in one query. The
// documented limit is 14 days; 13 keeps a safety margin and matches the
// window length the API was observed to serve reliably.
const maxWindowSpan = 13 * 24 * time.Hour

// providerEpoch is the earliest instant the API holds data for.
var providerEpoch = time.Date(2018, time.May, 10, 23, 30, 0, 0, time.UTC)

// ErrEmptyRange is returned by Split when the resolved end instant
// precedes the start instant after clamping.
var ErrEmptyRange = errors.New("end date is before start date")

// Window is one bounded interval submitted as a single API query.
// From never exceeds To, the span never exceeds maxWindowSpan and both
// endpoints fall within the same calendar year.
type Window struct {
	From time.Time
	To   time.Time
}

// Duration returns the window span.
func (w Window) Duration() time.Duration {
	return w.To.Sub(w.From)
}

// ValidityBounds is the [Oldest, Now] range outside which the API has
// no data. It is computed once per call and passed explicitly so tests
// can inject a fixed clock.
type ValidityBounds struct {
	Oldest time.Time
	Now    time.Time
}

// DefaultBounds returns the bounds for a call happening at now.
func DefaultBounds(now time.Time) ValidityBounds {
	return ValidityBounds{Oldest: providerEpoch, Now: now.UTC().Truncate(time.Minute)}
}

// Clamp forces t into [Oldest, Now].
func (b ValidityBounds) Clamp(t time.Time) time.Time {
	if t.Before(b.Oldest) {
		return b.Oldest
	}
	if t.After(b.Now) {
		return b.Now
	}
	return t
}

// Split parses start and end, clamps both into bounds and decomposes
// the resulting range into an ordered sequence of non-overlapping
// windows that exactly covers it. An empty end defaults to bounds.Now.
//
// The scan is greedy: each window extends maxWindowSpan from its start,
// cut short at the next Jan-1 00:00 boundary (the API rejects windows
// spanning a year change) and finally at the clamped end. A zero-length
// range yields a single degenerate window. An end that resolves to
// before start is rejected with ErrEmptyRange.
func Split(start, end string, bounds ValidityBounds) ([]Window, error) {
	startAt, err := ParseInstant(start)
	if err != nil {
		return nil, err
	}

	endAt := bounds.Now
	if end != "" {
		endAt, err = ParseInstant(end)
		if err != nil {
			return nil, err
		}
	}

	startAt = bounds.Clamp(startAt)
	endAt = bounds.Clamp(endAt)

	if endAt.Before(startAt) {
		return nil, fmt.Errorf("range %s to %s: %w",
			FormatInstant(startAt), FormatInstant(endAt), ErrEmptyRange)
	}

	var windows []Window
	current := startAt
	for {
		next := current.Add(maxWindowSpan)

		newYear := time.Date(current.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !next.Before(newYear) {
			next = newYear
		}

		if !next.Before(endAt) {
			windows = append(windows, Window{From: current, To: endAt})
			return windows, nil
		}

		windows = append(windows, Window{From: current, To: next})
		current = next
	}
}
