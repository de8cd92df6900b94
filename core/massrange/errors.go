package massrange

import (
	"errors"
	"fmt"
)

// ErrInvalidRange reports malformed user input: a missing required bound,
// an inverted min/max pair or a violated mass1 >= mass2 convention.
var ErrInvalidRange = errors.New("invalid mass range")

// ErrInfeasible is matched by every *InfeasibleError.
var ErrInfeasible = errors.New("mass range admits no systems")

// InfeasibleError names the restriction (or combination of restrictions)
// that removed the whole parameter space.
type InfeasibleError struct {
	Restriction string
	Detail      string
}

func (e *InfeasibleError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrInfeasible, e.Restriction)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInfeasible, e.Restriction, e.Detail)
}

func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidRange}, a...)...)
}
