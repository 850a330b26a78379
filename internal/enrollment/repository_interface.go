package enrollment

import "context"

type Repository interface {
	// Enroll inserts an enrollment after checking, under the class row lock,
	// that the member is not already enrolled and that the headcount is below
	// capacity. The check and the insert commit together.
	Enroll(ctx context.Context, memberID, classID int) (*Enrollment, error)

	// Cancel removes the member's enrollment. Refused once the class has
	// started.
	Cancel(ctx context.Context, memberID, classID int) error

	ListForMember(ctx context.Context, memberID int) ([]EnrollmentWithClass, error)

	// ListAvailable returns future classes with their live headcount and
	// whether the member already holds a spot.
	ListAvailable(ctx context.Context, memberID int) ([]AvailableClass, error)
}
