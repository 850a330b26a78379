package class

import (
	"context"
	"time"

	"gymflow/internal/schedule"
)

type Repository interface {
	// Schedule atomically checks the window against the trainer's and the
	// room's existing classes and inserts the new class. The trainer is
	// checked first; the first conflict found is reported.
	Schedule(ctx context.Context, trainerID, roomID int, activity string, window schedule.TimeWindow, capacity int) (*Class, error)

	// Update re-runs the conflict scan with the effective values, excluding
	// the class being updated from its own scan, then applies only the
	// patched fields.
	Update(ctx context.Context, classID int, patch Patch) (*Class, error)

	// Delete refuses with *IntegrityError while enrollments reference the
	// class.
	Delete(ctx context.Context, classID int) error

	GetByID(ctx context.Context, id int) (*Class, error)
	GetAll(ctx context.Context) ([]ClassWithDetails, error)
	GetByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]Class, error)

	// FindAvailableTrainers returns the ids of trainers with no class
	// overlapping the window.
	FindAvailableTrainers(ctx context.Context, window schedule.TimeWindow) ([]int, error)
}
