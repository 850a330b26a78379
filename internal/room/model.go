package room

import "time"

type Room struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Status   string `json:"status" binding:"omitempty,max=100"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Capacity *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Status   *string `json:"status,omitempty" binding:"omitempty,max=100"`
}
