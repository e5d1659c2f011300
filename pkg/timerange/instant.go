// Package timerange normalises requested date ranges into query windows
// the Carbon Intensity API accepts.
//
// The API only serves bounded windows: at most 14 days long, never
// crossing a calendar-year boundary, never before the oldest data it
// holds and never after now. Split decomposes an arbitrary range into a
// chronological sequence of windows that each satisfy those limits.
package timerange

import (
	"fmt"
	"time"
)

// Accepted instant layouts, tried in order. A bare date implies midnight.
const (
	DateLayout    = "2006-01-02"
	InstantLayout = "2006-01-02T15:04Z"
)

// ParseError reports a date string that matches neither accepted layout.
type ParseError struct {
	Input string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", e.Input, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseInstant parses a minute-precision UTC instant. It accepts
// YYYY-MM-DD (time defaults to 00:00) and the strict form
// YYYY-MM-DDThh:mmZ used by the API.
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(InstantLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// FormatInstant renders an instant in the API's query format,
// YYYY-MM-DDThh:mmZ. FormatInstant and ParseInstant round-trip at
// minute precision.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}
