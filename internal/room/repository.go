package room

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRoomNotFound = errors.New("room not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, capacity int, status string) (*Room, error) {
	query := `
		INSERT INTO rooms (name, capacity, status)
		VALUES ($1, $2, $3)
		RETURNING id, name, capacity, status, created_at
	`

	var rm Room
	err := r.db.GetContext(ctx, &rm, query, name, capacity, status)
	if err != nil {
		return nil, err
	}

	return &rm, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, name, capacity, status, created_at
		FROM rooms
		ORDER BY id
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Room, error) {
	query := `
		SELECT id, name, capacity, status, created_at
		FROM rooms
		WHERE id = $1
	`

	var rm Room
	err := r.db.GetContext(ctx, &rm, query, id)
	if err != nil {
		return nil, err
	}

	return &rm, nil
}

func (r *repository) Update(ctx context.Context, rm *Room) error {
	query := `
		UPDATE rooms
		SET name = $1, capacity = $2, status = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, rm.Name, rm.Capacity, rm.Status, rm.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM rooms WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

func (r *repository) CountScheduledClasses(ctx context.Context, roomID int) (int, error) {
	query := `SELECT COUNT(*) FROM classes WHERE room_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, roomID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
