package ctf

import (
	"errors"
	"fmt"
)

// Construction-scoped failure kinds.
var (
	// ErrDiscretization: no mass layer, or the nodal grid is not usable.
	ErrDiscretization = errors.New("ctf: construction cannot be discretized")

	// ErrConvergence: the eigen solve failed or produced an ill-conditioned system.
	ErrConvergence = errors.New("ctf: eigen solve did not converge")

	// ErrTermLimitExceeded: more history terms are needed than allowed.
	ErrTermLimitExceeded = errors.New("ctf: history term limit exceeded")
)

// ErrInitFailed is returned by Run when at least one construction failed.
var ErrInitFailed = errors.New("program terminated for reasons listed (conduction transfer function initialization)")

// ConstructionError ties a failure kind to the construction it happened on.
type ConstructionError struct {
	Construction string
	Kind         error
	Detail       string

	// a wider time step may resolve it
	retry bool
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: construction=%s: %s", e.Kind, e.Construction, e.Detail)
}

func (e *ConstructionError) Unwrap() error {
	return e.Kind
}

// KindName is the short name written to the report.
func (e *ConstructionError) KindName() string {
	switch e.Kind {
	case ErrDiscretization:
		return "DiscretizationError"
	case ErrConvergence:
		return "ConvergenceError"
	case ErrTermLimitExceeded:
		return "TermLimitExceeded"
	default:
		return "Error"
	}
}

func newConstructionError(name string, kind error, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{
		Construction: name,
		Kind:         kind,
		Detail:       fmt.Sprintf(format, args...),
	}
}
