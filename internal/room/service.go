package room

import (
	"context"
	"errors"
	"fmt"
)

// InUseError is returned when deleting a room that still has classes
// scheduled in it.
type InUseError struct {
	Classes int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("room has %d scheduled class(es)", e.Classes)
}

var ErrRoomExists = errors.New("room name already exists")

type Service interface {
	Create(ctx context.Context, req CreateRoomRequest) (*Room, error)
	GetAll(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id int) (*Room, error)
	Update(ctx context.Context, id int, req UpdateRoomRequest) (*Room, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	status := req.Status
	if status == "" {
		status = "open"
	}
	return s.repo.Create(ctx, req.Name, req.Capacity, status)
}

func (s *service) GetAll(ctx context.Context) ([]Room, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id int) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateRoomRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	if req.Name != nil {
		rm.Name = *req.Name
	}
	if req.Capacity != nil {
		rm.Capacity = *req.Capacity
	}
	if req.Status != nil {
		rm.Status = *req.Status
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}

	return rm, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrRoomNotFound
	}

	count, err := s.repo.CountScheduledClasses(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &InUseError{Classes: count}
	}

	return s.repo.Delete(ctx, id)
}
