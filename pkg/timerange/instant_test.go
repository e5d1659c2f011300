package timerange

import (
	"errors"
	"testing"
	"time"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        time.Time
		expectError bool
	}{
		{
			name:  "bare date defaults to midnight",
			input: "2023-05-15",
			want:  time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "full date-time with literal Z",
			input: "2023-05-15T12:30Z",
			want:  time.Date(2023, 5, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			name:  "epoch-era instant",
			input: "2018-05-10T23:30Z",
			want:  time.Date(2018, 5, 10, 23, 30, 0, 0, time.UTC),
		},
		{
			name:        "missing Z suffix",
			input:       "2023-05-15T12:30",
			expectError: true,
		},
		{
			name:        "seconds not accepted",
			input:       "2023-05-15T12:30:00Z",
			expectError: true,
		},
		{
			name:        "garbage",
			input:       "not-a-date",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatalf("ParseInstant(%q) succeeded, want error", tt.input)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("ParseInstant(%q) error = %v, want *ParseError", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseInstant(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseInstant(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatInstantRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2018, 5, 10, 23, 30, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 1, 0, 0, time.UTC),
	}

	for _, want := range instants {
		formatted := FormatInstant(want)

		got, err := ParseInstant(formatted)
		if err != nil {
			t.Fatalf("ParseInstant(%q) failed: %v", formatted, err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip via %q = %v, want %v", formatted, got, want)
		}
	}
}

func TestFormatInstantNormalisesToUTC(t *testing.T) {
	plusTwo := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2023, 5, 15, 14, 30, 0, 0, plusTwo)

	if got, want := FormatInstant(local), "2023-05-15T12:30Z"; got != want {
		t.Errorf("FormatInstant(%v) = %q, want %q", local, got, want)
	}
}
