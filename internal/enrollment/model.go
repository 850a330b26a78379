package enrollment

import "time"

// Enrollment ties one member to one class. The pair is unique; headcount for
// a class is always a live count of these rows, never a stored counter.
type Enrollment struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	ClassID   int       `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type EnrollmentWithClass struct {
	Enrollment
	Activity    string    `db:"activity" json:"activity"`
	StartsAt    time.Time `db:"starts_at" json:"starts_at"`
	EndsAt      time.Time `db:"ends_at" json:"ends_at"`
	TrainerName string    `db:"trainer_name" json:"trainer_name"`
	RoomName    string    `db:"room_name" json:"room_name"`
}

// AvailableClass is a future class as a member sees it when browsing.
type AvailableClass struct {
	ID          int       `db:"id" json:"id"`
	Activity    string    `db:"activity" json:"activity"`
	StartsAt    time.Time `db:"starts_at" json:"starts_at"`
	EndsAt      time.Time `db:"ends_at" json:"ends_at"`
	Capacity    int       `db:"capacity" json:"capacity"`
	Enrolled    int       `db:"enrolled" json:"enrolled"`
	TrainerName string    `db:"trainer_name" json:"trainer_name"`
	RoomName    string    `db:"room_name" json:"room_name"`
	IsEnrolled  bool      `db:"is_enrolled" json:"is_enrolled"`
}

// classInfo is the slice of the class row the enrollment gate needs while
// holding the row lock.
type classInfo struct {
	ID       int       `db:"id"`
	Activity string    `db:"activity"`
	StartsAt time.Time `db:"starts_at"`
	Capacity int       `db:"capacity"`
}
