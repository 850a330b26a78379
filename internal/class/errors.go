package class

import (
	"errors"
	"fmt"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidStart    = errors.New("invalid start time")
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	ErrEmptyPatch      = errors.New("no fields to update")
)

type ConflictKind string

const (
	TrainerBusy ConflictKind = "trainer_busy"
	RoomBusy    ConflictKind = "room_busy"
)

// ConflictError reports which exclusive resource is occupied and by which
// existing class, so the caller can offer a different slot.
type ConflictError struct {
	Kind    ConflictKind
	ClassID int
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case TrainerBusy:
		return fmt.Sprintf("trainer is busy, conflicts with class %d", e.ClassID)
	case RoomBusy:
		return fmt.Sprintf("room is occupied, conflicts with class %d", e.ClassID)
	}
	return fmt.Sprintf("scheduling conflict with class %d", e.ClassID)
}

// IntegrityError blocks deletion of a class that members are still enrolled
// in. There is no force path around it.
type IntegrityError struct {
	Enrollments int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("class has %d active enrollment(s)", e.Enrollments)
}

// StorageError wraps storage failures that survived the bounded retry on
// serialization aborts.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
