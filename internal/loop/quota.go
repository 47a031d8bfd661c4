package loop

import (
	"errors"
	"fmt"
)

// DefaultMaxSteps is the default step quota for a single Run.
// A step is one macrotask, one microtask or one timer firing.
const DefaultMaxSteps = 100_000

// stepQuota tracks executed steps for one Run and enforces a maximum.
//
// The quota is the loop's termination guarantee: an interval that is never
// cleared, or a microtask that re-queues itself forever, burns through the
// quota instead of hanging the process. Demos that finish normally never
// come close to the limit.
type stepQuota struct {
	maxSteps int
	current  int
}

// step increments the counter and validates against the limit.
func (q *stepQuota) step() error {
	q.current++
	if q.current > q.maxSteps {
		return &StepsExceededError{Steps: q.current, Limit: q.maxSteps}
	}
	return nil
}

// StepsExceededError is returned by Run when the step quota is exhausted.
//
// Unlike a task panic (which is logged and skipped), exceeding the quota
// terminates the whole Run: the loop is by definition not making progress
// toward quiescence.
type StepsExceededError struct {
	Steps int // Steps executed
	Limit int // Maximum allowed steps
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("loop exceeded step quota: %d steps > %d limit", e.Steps, e.Limit)
}

// IsStepsExceededError reports whether err is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
