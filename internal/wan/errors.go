package wan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoWanFound means no heuristic match and no default route.
var ErrNoWanFound = errors.New("no WAN interface found")

// ResolutionError is the only error that ends a run early.
type ResolutionError struct {
	Reason error
	// Interfaces are the logical interfaces that were considered.
	Interfaces []string
}

func (e *ResolutionError) Error() string {
	if len(e.Interfaces) == 0 {
		return fmt.Sprintf("%v (no interfaces enumerated)", e.Reason)
	}
	return fmt.Sprintf("%v (considered: %s)", e.Reason, strings.Join(e.Interfaces, ", "))
}

func (e *ResolutionError) Unwrap() error {
	return e.Reason
}
