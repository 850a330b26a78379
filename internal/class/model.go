package class

import "time"

// Class is a scheduled activity occupying one trainer and one room for a
// fixed 90-minute window.
type Class struct {
	ID        int       `db:"id" json:"id"`
	TrainerID int       `db:"trainer_id" json:"trainer_id"`
	RoomID    int       `db:"room_id" json:"room_id"`
	Activity  string    `db:"activity" json:"activity"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	EndsAt    time.Time `db:"ends_at" json:"ends_at"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ClassWithDetails struct {
	Class
	TrainerName string `db:"trainer_name" json:"trainer_name"`
	RoomName    string `db:"room_name" json:"room_name"`
}

// Patch carries the fields of an update request. Nil means "leave the current
// value untouched"; the effective value for the conflict scan is the patch
// field if set, otherwise the stored one.
type Patch struct {
	Activity  *string
	StartsAt  *time.Time
	TrainerID *int
	RoomID    *int
}

func (p Patch) IsEmpty() bool {
	return p.Activity == nil && p.StartsAt == nil && p.TrainerID == nil && p.RoomID == nil
}

type ScheduleClassRequest struct {
	TrainerID int    `json:"trainer_id" binding:"required"`
	RoomID    int    `json:"room_id" binding:"required"`
	Activity  string `json:"activity" binding:"required,min=1,max=100"`
	StartsAt  string `json:"starts_at" binding:"required"` // RFC 3339
	Capacity  int    `json:"capacity" binding:"min=0"`
}

type UpdateClassRequest struct {
	Activity  *string `json:"activity,omitempty" binding:"omitempty,min=1,max=100"`
	StartsAt  *string `json:"starts_at,omitempty"`
	TrainerID *int    `json:"trainer_id,omitempty"`
	RoomID    *int    `json:"room_id,omitempty"`
}

type AvailableTrainersRequest struct {
	StartsAt string `form:"starts_at" binding:"required"` // RFC 3339
	EndsAt   string `form:"ends_at"`                      // defaults to starts_at + class duration
}
