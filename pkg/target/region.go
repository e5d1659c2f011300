// Package target identifies the subject of a carbon intensity query:
// a DNO region, a postcode area or the national aggregate.
package target

import (
	"fmt"
	"strconv"
)

// Region is a DNO region id as used by the Carbon Intensity API.
type Region int

// The 17 regions the API recognises.
const (
	NorthScotland Region = iota + 1
	SouthScotland
	NorthWestEngland
	NorthEastEngland
	SouthYorkshire
	NorthWalesMerseysideAndCheshire
	SouthWales
	WestMidlands
	EastMidlands
	EastEngland
	SouthWestEngland
	SouthEngland
	London
	SouthEastEngland
	England
	Scotland
	Wales
)

var regionNames = map[Region]string{
	NorthScotland:                   "North Scotland",
	SouthScotland:                   "South Scotland",
	NorthWestEngland:                "North West England",
	NorthEastEngland:                "North East England",
	SouthYorkshire:                  "South Yorkshire",
	NorthWalesMerseysideAndCheshire: "North Wales, Merseyside and Cheshire",
	SouthWales:                      "South Wales",
	WestMidlands:                    "West Midlands",
	EastMidlands:                    "East Midlands",
	EastEngland:                     "East England",
	SouthWestEngland:                "South West England",
	SouthEngland:                    "South England",
	London:                          "London",
	SouthEastEngland:                "South East England",
	England:                         "England",
	Scotland:                        "Scotland",
	Wales:                           "Wales",
}

// Valid reports whether r is one of the 17 known region ids.
func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// String returns the region's display name.
func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("region %d", int(r))
}

// ParseRegion parses a numeric region id. Non-numeric input or an id
// outside 1..17 is an error.
func ParseRegion(s string) (Region, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("region id %q is not numeric", s)
	}

	r := Region(id)
	if !r.Valid() {
		return 0, fmt.Errorf("region id %d outside allowed range, must be between 1 and 17", id)
	}
	return r, nil
}
