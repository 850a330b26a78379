package class

import (
	"context"
	"errors"
	"time"

	"gymflow/internal/metrics"
	"gymflow/internal/schedule"
)

type Service interface {
	Schedule(ctx context.Context, req ScheduleClassRequest) (*Class, error)
	Update(ctx context.Context, classID int, req UpdateClassRequest) (*Class, error)
	Delete(ctx context.Context, classID int) error
	GetByID(ctx context.Context, id int) (*Class, error)
	GetAll(ctx context.Context) ([]ClassWithDetails, error)
	GetTrainerSchedule(ctx context.Context, trainerID int, from, to time.Time) ([]Class, error)
	FindAvailableTrainers(ctx context.Context, req AvailableTrainersRequest) ([]int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseStart(value string) (time.Time, error) {
	start, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidStart
	}
	return start, nil
}

// Schedule books a class for its full window. The end is derived from the
// start, never supplied by the caller.
func (s *service) Schedule(ctx context.Context, req ScheduleClassRequest) (*Class, error) {
	start, err := parseStart(req.StartsAt)
	if err != nil {
		return nil, err
	}
	if req.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	window := schedule.NewClassWindow(start)

	created, err := s.repo.Schedule(ctx, req.TrainerID, req.RoomID, req.Activity, window, req.Capacity)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordScheduleConflict(string(conflict.Kind))
		}
		return nil, err
	}

	metrics.RecordClassScheduled()
	return created, nil
}

func (s *service) Update(ctx context.Context, classID int, req UpdateClassRequest) (*Class, error) {
	patch := Patch{
		Activity:  req.Activity,
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
	}
	if req.StartsAt != nil {
		start, err := parseStart(*req.StartsAt)
		if err != nil {
			return nil, err
		}
		patch.StartsAt = &start
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	updated, err := s.repo.Update(ctx, classID, patch)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordScheduleConflict(string(conflict.Kind))
		}
		return nil, err
	}

	return updated, nil
}

func (s *service) Delete(ctx context.Context, classID int) error {
	return s.repo.Delete(ctx, classID)
}

func (s *service) GetByID(ctx context.Context, id int) (*Class, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]ClassWithDetails, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetTrainerSchedule(ctx context.Context, trainerID int, from, to time.Time) ([]Class, error) {
	return s.repo.GetByTrainer(ctx, trainerID, from, to)
}

// FindAvailableTrainers returns trainers with no class overlapping the probe
// window. When the end is omitted the window spans one class duration.
func (s *service) FindAvailableTrainers(ctx context.Context, req AvailableTrainersRequest) ([]int, error) {
	start, err := parseStart(req.StartsAt)
	if err != nil {
		return nil, err
	}

	var window schedule.TimeWindow
	if req.EndsAt == "" {
		window = schedule.NewClassWindow(start)
	} else {
		end, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return nil, ErrInvalidStart
		}
		window, err = schedule.NewTimeWindow(start, end)
		if err != nil {
			return nil, err
		}
	}

	return s.repo.FindAvailableTrainers(ctx, window)
}
