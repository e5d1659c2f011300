package target

import "strings"

// Kind discriminates the Target variants.
type Kind int

// Target variants.
const (
	KindNational Kind = iota
	KindRegion
	KindPostcode
)

// Target is the closed set of query subjects. The zero value is the
// national aggregate.
type Target struct {
	kind     Kind
	region   Region
	postcode string
}

// National is the nation-wide aggregate target.
var National = Target{kind: KindNational}

// ForRegion returns a target for a DNO region.
func ForRegion(r Region) Target {
	return Target{kind: KindRegion, region: r}
}

// ForPostcode returns a target for an outward postcode area, e.g. "BS7".
func ForPostcode(code string) Target {
	return Target{kind: KindPostcode, postcode: code}
}

// Parse converts free-form user input into a Target. Numeric input
// naming a valid region id becomes a region target; an empty string or
// "national" in any case becomes the national aggregate; everything
// else is assumed to be a postcode. Parse never fails — postcode syntax
// is only checked at the call site that builds a query from it.
func Parse(s string) Target {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "national") {
		return National
	}

	if r, err := ParseRegion(trimmed); err == nil {
		return ForRegion(r)
	}

	return ForPostcode(trimmed)
}

// Kind returns the variant discriminator.
func (t Target) Kind() Kind {
	return t.kind
}

// Region returns the region id for KindRegion targets; zero otherwise.
func (t Target) Region() Region {
	return t.region
}

// Postcode returns the postcode for KindPostcode targets; "" otherwise.
func (t Target) Postcode() string {
	return t.postcode
}

// String renders the target for user-facing messages.
func (t Target) String() string {
	switch t.kind {
	case KindPostcode:
		return "postcode " + t.postcode
	case KindRegion:
		return t.region.String()
	default:
		return "national"
	}
}
