package trainer

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, name string, startDate time.Time) (*Trainer, error)
	GetAll(ctx context.Context) ([]Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)

	// AddWindow atomically checks the new window against the trainer's
	// existing windows on the same weekday and inserts it. Returns
	// ErrTrainerNotFound if the trainer does not exist and *OverlapError if
	// the window overlaps an existing one.
	AddWindow(ctx context.Context, trainerID int, day time.Weekday, startMin, endMin int) (*AvailabilityWindow, error)
	ListWindows(ctx context.Context, trainerID int) ([]AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, trainerID, windowID int) error
}
