package radar

import (
	"errors"
	"fmt"
)

// Shape errors returned by Validate and Config.Check.
var (
	ErrNoAxesProvided         = errors.New("radar: no axes provided for radar graph")
	ErrNoCurvesProvided       = errors.New("radar: no curves provided for radar graph")
	ErrDataPointCountMismatch = errors.New("radar: data point count mismatch")
	ErrInvalidMaxValue        = errors.New("radar: max value must be positive")
	ErrInvalidSize            = errors.New("radar: width and height must be positive")
	ErrDuplicateCurveName     = errors.New("radar: duplicate curve name")
)

// DataPointCountMismatchError reports the first curve whose point count
// differs from the axis count. It matches ErrDataPointCountMismatch under
// errors.Is.
type DataPointCountMismatchError struct {
	CurveName string
	Expected  int
	Actual    int
}

func (e *DataPointCountMismatchError) Error() string {
	return fmt.Sprintf("radar: data point count mismatch in curve '%s': expected %d points (to match axis count), got %d points",
		e.CurveName, e.Expected, e.Actual)
}

// Is reports whether target is ErrDataPointCountMismatch.
func (e *DataPointCountMismatchError) Is(target error) bool {
	return target == ErrDataPointCountMismatch
}
