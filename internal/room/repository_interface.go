package room

import "context"

type Repository interface {
	Create(ctx context.Context, name string, capacity int, status string) (*Room, error)
	GetAll(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id int) (*Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id int) error
	CountScheduledClasses(ctx context.Context, roomID int) (int, error)
}
