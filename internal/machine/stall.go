package machine

import (
	"errors"
	"fmt"
)

// StallQuota counts consecutive stalled ticks of one craft and enforces
// a limit.
//
// A successful tick resets the count, so only an uninterrupted run of
// stalls aborts a craft. A limit <= 0 disables the quota.
type StallQuota struct {
	maxStalls int
	current   int
}

// NewStallQuota creates a quota allowing maxStalls consecutive stalls.
func NewStallQuota(maxStalls int) *StallQuota {
	return &StallQuota{maxStalls: maxStalls}
}

// Check records one stall of executionID.
//
// Returns StallError if the quota is exceeded.
func (q *StallQuota) Check(executionID string) error {
	q.current++
	if q.maxStalls > 0 && q.current > q.maxStalls {
		return &StallError{
			ExecutionID: executionID,
			Stalls:      q.current,
			Limit:       q.maxStalls,
		}
	}
	return nil
}

// Reset sets the stall count to 0.
func (q *StallQuota) Reset() {
	q.current = 0
}

// Current returns the current consecutive stall count.
func (q *StallQuota) Current() int {
	return q.current
}

// MaxStalls returns the limit.
func (q *StallQuota) MaxStalls() int {
	return q.maxStalls
}

// StallError is returned when a craft stalls more often in a row than the
// quota allows. The craft has been aborted when it is returned.
type StallError struct {
	ExecutionID string
	Stalls      int
	Limit       int
}

// Error implements the error interface.
func (e *StallError) Error() string {
	return fmt.Sprintf("craft %s stalled %d ticks in a row (limit %d)",
		e.ExecutionID, e.Stalls, e.Limit)
}

// IsStallError returns true if err is a StallError.
// Uses errors.As to handle wrapped errors.
func IsStallError(err error) bool {
	var se *StallError
	return errors.As(err, &se)
}
