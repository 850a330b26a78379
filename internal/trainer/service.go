package trainer

import (
	"context"
	"time"

	"gymflow/internal/metrics"
	"gymflow/internal/schedule"
)

type Service interface {
	Register(ctx context.Context, req CreateTrainerRequest) (*Trainer, error)
	GetAll(ctx context.Context) ([]Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	AddAvailability(ctx context.Context, trainerID int, req AddAvailabilityRequest) (*AvailabilityWindow, error)
	ListAvailability(ctx context.Context, trainerID int) ([]AvailabilityWindow, error)
	RemoveAvailability(ctx context.Context, trainerID, windowID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req CreateTrainerRequest) (*Trainer, error) {
	return s.repo.Create(ctx, req.Name, time.Now())
}

func (s *service) GetAll(ctx context.Context) ([]Trainer, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int) (*Trainer, error) {
	return s.repo.GetByID(ctx, id)
}

// AddAvailability records a recurring weekly window after checking it against
// the trainer's windows on the same weekday. Windows on different weekdays
// never conflict. The registry is advisory and is deliberately not consulted
// by class scheduling.
func (s *service) AddAvailability(ctx context.Context, trainerID int, req AddAvailabilityRequest) (*AvailabilityWindow, error) {
	day, err := ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, err
	}

	startMin, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := schedule.NewClockWindow(startMin, endMin); err != nil {
		return nil, err
	}

	window, err := s.repo.AddWindow(ctx, trainerID, day, startMin, endMin)
	if err != nil {
		return nil, err
	}

	metrics.RecordAvailabilityWindow()
	return window, nil
}

func (s *service) ListAvailability(ctx context.Context, trainerID int) ([]AvailabilityWindow, error) {
	if _, err := s.repo.GetByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.ListWindows(ctx, trainerID)
}

func (s *service) RemoveAvailability(ctx context.Context, trainerID, windowID int) error {
	if _, err := s.repo.GetByID(ctx, trainerID); err != nil {
		return err
	}
	return s.repo.DeleteWindow(ctx, trainerID, windowID)
}
