package intensity

import (
	"errors"
	"fmt"

	"github.com/carbonwatch/carbon-intensity-client/pkg/target"
)

// ErrNoData is returned when a well-formed response contains no
// measurement where a value was required.
var ErrNoData = errors.New("no data found")

// InvalidTargetError reports a target that cannot be used for the
// requested query.
type InvalidTargetError struct {
	Target target.Target
	Reason string
}

// Error implements the error interface.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %s: %s", e.Target, e.Reason)
}
