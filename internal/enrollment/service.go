package enrollment

import (
	"context"
	"errors"

	"gymflow/internal/class"
	"gymflow/internal/logger"
	"gymflow/internal/member"
	"gymflow/internal/metrics"
	"gymflow/internal/notify"
)

type Service interface {
	Enroll(ctx context.Context, memberID, classID int) (*Enrollment, error)
	Cancel(ctx context.Context, memberID, classID int) error
	ListMine(ctx context.Context, memberID int) ([]EnrollmentWithClass, error)
	BrowseClasses(ctx context.Context, memberID int) ([]AvailableClass, error)
}

type service struct {
	repo     Repository
	classes  class.Repository
	members  member.Repository
	notifier *notify.Service
}

func NewService(repo Repository, classes class.Repository, members member.Repository, notifier *notify.Service) Service {
	return &service{
		repo:     repo,
		classes:  classes,
		members:  members,
		notifier: notifier,
	}
}

func (s *service) Enroll(ctx context.Context, memberID, classID int) (*Enrollment, error) {
	e, err := s.repo.Enroll(ctx, memberID, classID)
	if err != nil {
		var full *CapacityError
		switch {
		case errors.Is(err, ErrAlreadyEnrolled):
			metrics.RecordEnrollment("duplicate")
		case errors.As(err, &full):
			metrics.RecordEnrollment("full")
		}
		return nil, err
	}

	metrics.RecordEnrollment("confirmed")
	s.sendConfirmation(ctx, memberID, classID)

	return e, nil
}

// sendConfirmation is best effort: an unreachable queue never unwinds a
// committed enrollment.
func (s *service) sendConfirmation(ctx context.Context, memberID, classID int) {
	cls, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		logger.WithError(err).Error("Failed to load class for confirmation email")
		return
	}

	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		logger.WithError(err).Error("Failed to load member for confirmation email")
		return
	}

	if err := s.notifier.EnrollmentConfirmed(ctx, m.Email, m.Name, cls.Activity, cls.StartsAt); err != nil {
		logger.WithError(err).Error("Failed to queue enrollment confirmation")
	}
}

func (s *service) Cancel(ctx context.Context, memberID, classID int) error {
	cls, clsErr := s.classes.GetByID(ctx, classID)

	if err := s.repo.Cancel(ctx, memberID, classID); err != nil {
		return err
	}

	metrics.RecordEnrollmentCancellation()

	if clsErr == nil {
		if m, err := s.members.FindByID(ctx, memberID); err == nil {
			if err := s.notifier.EnrollmentCancelled(ctx, m.Email, m.Name, cls.Activity, cls.StartsAt); err != nil {
				logger.WithError(err).Error("Failed to queue cancellation email")
			}
		}
	}

	return nil
}

func (s *service) ListMine(ctx context.Context, memberID int) ([]EnrollmentWithClass, error) {
	return s.repo.ListForMember(ctx, memberID)
}

func (s *service) BrowseClasses(ctx context.Context, memberID int) ([]AvailableClass, error) {
	return s.repo.ListAvailable(ctx, memberID)
}
