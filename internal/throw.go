package internal

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Threading errors up and down every ring trace and star walk would add a ton
// of complexity to the graph code. A broken graph invariant means the graph is
// corrupt anyway, so we panic, and the public API recovers to convert to an
// error.

type TopologyError struct {
	cause    error
	Location orb.Point
	located  bool
}

func (e *TopologyError) Error() string {
	if e.located {
		return fmt.Sprintf("%s [ (%g, %g) ]", e.cause.Error(), e.Location[0], e.Location[1])
	}
	return e.cause.Error()
}

func (e *TopologyError) Cause() error {
	return e.cause
}

// HasLocation reports whether the error carries the coordinate where the
// graph broke.
func (e *TopologyError) HasLocation() bool {
	return e.located
}

// Panic with a TopologyError.
func Fatalf(format string, args ...interface{}) {
	panic(&TopologyError{cause: errors.Errorf(format, args...)})
}

// Panic with a TopologyError located at p.
func FatalAtf(p orb.Point, format string, args ...interface{}) {
	panic(&TopologyError{cause: errors.Errorf(format, args...), Location: p, located: true})
}

// Other panics are passed through untouched.
func HandleTopologyPanicRecover(r interface{}) error {
	if r != nil {
		if topologyError, ok := r.(*TopologyError); ok {
			return topologyError
		}
		panic(r)
	}
	return nil
}
