package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ErrInvalidArgument is wrapped by every input validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// validateInput checks the packer's preconditions and reports every
// violation it finds.
func validateInput(widths, heights []float64, containerWidth float64) error {
	var errs error

	if len(widths) != len(heights) {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d widths but %d heights", ErrInvalidArgument, len(widths), len(heights)))
	}
	if math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) || containerWidth <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: container width must be a positive finite number, got %v", ErrInvalidArgument, containerWidth))
	}
	errs = multierr.Append(errs, checkDimensions("width", widths))
	errs = multierr.Append(errs, checkDimensions("height", heights))

	return errs
}

func checkDimensions(name string, values []float64) error {
	var errs error
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s[%d] must be a non-negative finite number, got %v", ErrInvalidArgument, name, i, v))
		}
	}
	return errs
}
