package enrollment

import (
	"errors"
	"fmt"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrAlreadyEnrolled = errors.New("member is already enrolled in this class")
	ErrNotEnrolled     = errors.New("member is not enrolled in this class")
	ErrClassStarted    = errors.New("class has already started")
)

// CapacityError reports a full class together with the numbers the caller
// needs to explain the refusal.
type CapacityError struct {
	Capacity int
	Enrolled int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("class is full (%d/%d)", e.Enrolled, e.Capacity)
}
