package enrollment

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gymflow/internal/class"
	"gymflow/internal/logger"
	"gymflow/internal/member"
	"gymflow/internal/notify"
	"gymflow/internal/schedule"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockEnrollmentRepo struct{ mock.Mock }
type MockClassRepo struct{ mock.Mock }
type MockMemberRepo struct{ mock.Mock }

func (m *MockEnrollmentRepo) Enroll(ctx context.Context, memberID, classID int) (*Enrollment, error) {
	args := m.Called(ctx, memberID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepo) Cancel(ctx context.Context, memberID, classID int) error {
	return m.Called(ctx, memberID, classID).Error(0)
}

func (m *MockEnrollmentRepo) ListForMember(ctx context.Context, memberID int) ([]EnrollmentWithClass, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]EnrollmentWithClass), args.Error(1)
}

func (m *MockEnrollmentRepo) ListAvailable(ctx context.Context, memberID int) ([]AvailableClass, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AvailableClass), args.Error(1)
}

func (m *MockClassRepo) Schedule(ctx context.Context, trainerID, roomID int, activity string, window schedule.TimeWindow, capacity int) (*class.Class, error) {
	args := m.Called(ctx, trainerID, roomID, activity, window, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepo) Update(ctx context.Context, classID int, patch class.Patch) (*class.Class, error) {
	args := m.Called(ctx, classID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepo) Delete(ctx context.Context, classID int) error {
	return m.Called(ctx, classID).Error(0)
}

func (m *MockClassRepo) GetByID(ctx context.Context, id int) (*class.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepo) GetAll(ctx context.Context) ([]class.ClassWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]class.ClassWithDetails), args.Error(1)
}

func (m *MockClassRepo) GetByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]class.Class, error) {
	args := m.Called(ctx, trainerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]class.Class), args.Error(1)
}

func (m *MockClassRepo) FindAvailableTrainers(ctx context.Context, window schedule.TimeWindow) ([]int, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockMemberRepo) Create(ctx context.Context, name, email string, phone *string, passwordHash, role string) (*member.Member, error) {
	args := m.Called(ctx, name, email, phone, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByID(ctx context.Context, id int) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestService(er *MockEnrollmentRepo, cr *MockClassRepo, mr *MockMemberRepo) Service {
	notifier := notify.New("noreply@gymflow.io", "GymFlow", "localhost", "1025", "", "", "localhost:6379")
	return NewService(er, cr, mr, notifier)
}

func TestService_Enroll(t *testing.T) {
	startsAt := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name        string
		setupMocks  func(*MockEnrollmentRepo, *MockClassRepo, *MockMemberRepo)
		expectError error
	}{
		{
			name: "successful enrollment",
			setupMocks: func(er *MockEnrollmentRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				er.On("Enroll", mock.Anything, 1, 10).Return(&Enrollment{
					ID:       100,
					MemberID: 1,
					ClassID:  10,
				}, nil)
				cr.On("GetByID", mock.Anything, 10).Return(&class.Class{
					ID:       10,
					Activity: "yoga",
					StartsAt: startsAt,
				}, nil)
				mr.On("FindByID", mock.Anything, 1).Return(&member.Member{
					ID:    1,
					Name:  "Sam",
					Email: "sam@example.com",
				}, nil)
			},
		},
		{
			name: "class full",
			setupMocks: func(er *MockEnrollmentRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				er.On("Enroll", mock.Anything, 1, 10).
					Return(nil, &CapacityError{Capacity: 20, Enrolled: 20})
			},
			expectError: &CapacityError{Capacity: 20, Enrolled: 20},
		},
		{
			name: "already enrolled",
			setupMocks: func(er *MockEnrollmentRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				er.On("Enroll", mock.Anything, 1, 10).Return(nil, ErrAlreadyEnrolled)
			},
			expectError: ErrAlreadyEnrolled,
		},
		{
			name: "class not found",
			setupMocks: func(er *MockEnrollmentRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				er.On("Enroll", mock.Anything, 1, 10).Return(nil, ErrClassNotFound)
			},
			expectError: ErrClassNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			er := new(MockEnrollmentRepo)
			cr := new(MockClassRepo)
			mr := new(MockMemberRepo)
			tt.setupMocks(er, cr, mr)

			service := newTestService(er, cr, mr)

			e, err := service.Enroll(context.Background(), 1, 10)

			if tt.expectError != nil {
				assert.Error(t, err)
				assert.Nil(t, e)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 100, e.ID)
			}
			er.AssertExpectations(t)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	startsAt := time.Now().Add(24 * time.Hour)

	t.Run("successful cancellation", func(t *testing.T) {
		er := new(MockEnrollmentRepo)
		cr := new(MockClassRepo)
		mr := new(MockMemberRepo)

		cr.On("GetByID", mock.Anything, 10).Return(&class.Class{
			ID:       10,
			Activity: "yoga",
			StartsAt: startsAt,
		}, nil)
		er.On("Cancel", mock.Anything, 1, 10).Return(nil)
		mr.On("FindByID", mock.Anything, 1).Return(&member.Member{
			ID:    1,
			Name:  "Sam",
			Email: "sam@example.com",
		}, nil)

		service := newTestService(er, cr, mr)

		err := service.Cancel(context.Background(), 1, 10)
		assert.NoError(t, err)
		er.AssertExpectations(t)
	})

	t.Run("not enrolled", func(t *testing.T) {
		er := new(MockEnrollmentRepo)
		cr := new(MockClassRepo)
		mr := new(MockMemberRepo)

		cr.On("GetByID", mock.Anything, 10).Return(&class.Class{ID: 10, StartsAt: startsAt}, nil)
		er.On("Cancel", mock.Anything, 1, 10).Return(ErrNotEnrolled)

		service := newTestService(er, cr, mr)

		err := service.Cancel(context.Background(), 1, 10)
		assert.ErrorIs(t, err, ErrNotEnrolled)
		mr.AssertNotCalled(t, "FindByID")
	})
}
