package intensity

import (
	"fmt"
	"time"

	"github.com/carbonwatch/carbon-intensity-client/pkg/timerange"
)

// Measurement is one half-hour-bucket forecast sample.
type Measurement struct {
	Time     time.Time
	Forecast int
}

// Wire types mirroring the API's JSON responses.

type wireIntensity struct {
	Forecast int    `json:"forecast"`
	Index    string `json:"index"`
}

type wireGenerationMix struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

type wireEntry struct {
	From          string              `json:"from"`
	To            string              `json:"to"`
	Intensity     wireIntensity       `json:"intensity"`
	GenerationMix []wireGenerationMix `json:"generationmix"`
}

type wireRegionData struct {
	RegionID  int         `json:"regionid"`
	DNORegion string      `json:"dnoregion,omitempty"`
	ShortName string      `json:"shortname"`
	Postcode  string      `json:"postcode,omitempty"`
	Data      []wireEntry `json:"data"`
}

// windowPayload is the shape of a ranged regional query: a single
// region object wrapping the entries.
type windowPayload struct {
	Data wireRegionData `json:"data"`
}

// groupsPayload is the shape of the windowless regional endpoints: a
// list of region groups, each with its own entries.
type groupsPayload struct {
	Data []wireRegionData `json:"data"`
}

// nationalPayload is the shape of the national /intensity endpoint:
// entries directly, no region wrapper.
type nationalPayload struct {
	Data []wireEntry `json:"data"`
}

// toMeasurements converts raw API entries, parsing each entry's "from"
// timestamp with the same dual-format parser used for query dates. A
// single unparsable entry fails the whole conversion.
func toMeasurements(entries []wireEntry) ([]Measurement, error) {
	measurements := make([]Measurement, 0, len(entries))
	for _, entry := range entries {
		at, err := timerange.ParseInstant(entry.From)
		if err != nil {
			return nil, fmt.Errorf("measurement timestamp: %w", err)
		}
		measurements = append(measurements, Measurement{
			Time:     at,
			Forecast: entry.Intensity.Forecast,
		})
	}
	return measurements, nil
}
