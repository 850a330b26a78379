package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gymflow/internal/schedule"
)

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrWindowNotFound  = errors.New("availability window not found")
)

// OverlapError reports the existing window that clashes with the one being
// added.
type OverlapError struct {
	Existing AvailabilityWindow
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlaps existing availability %s %s-%s",
		e.Existing.DayOfWeek, e.Existing.StartClock(), e.Existing.EndClock())
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, startDate time.Time) (*Trainer, error) {
	query := `
		INSERT INTO trainers (name, start_date)
		VALUES ($1, $2)
		RETURNING id, name, start_date, created_at
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, name, startDate)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, name, start_date, created_at
		FROM trainers
		ORDER BY id
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, name, start_date, created_at
		FROM trainers
		WHERE id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &t, nil
}

// AddWindow runs the overlap check and the insert in one transaction. The
// trainer row is locked first so two concurrent adds for the same trainer
// serialize; adds for different trainers do not contend.
func (r *repository) AddWindow(ctx context.Context, trainerID int, day time.Weekday, startMin, endMin int) (*AvailabilityWindow, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lockedID int
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM trainers WHERE id = $1 FOR UPDATE`, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	var existing []AvailabilityWindow
	err = tx.SelectContext(ctx, &existing, `
		SELECT id, trainer_id, day_of_week, start_min, end_min, created_at
		FROM trainer_availability
		WHERE trainer_id = $1 AND day_of_week = $2
	`, trainerID, day)
	if err != nil {
		return nil, err
	}

	candidate := schedule.ClockWindow{StartMin: startMin, EndMin: endMin}
	for _, w := range existing {
		if schedule.ClockOverlaps(candidate, schedule.ClockWindow{StartMin: w.StartMin, EndMin: w.EndMin}) {
			return nil, &OverlapError{Existing: w}
		}
	}

	var window AvailabilityWindow
	err = tx.GetContext(ctx, &window, `
		INSERT INTO trainer_availability (trainer_id, day_of_week, start_min, end_min)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trainer_id, day_of_week, start_min, end_min, created_at
	`, trainerID, day, startMin, endMin)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &window, nil
}

func (r *repository) ListWindows(ctx context.Context, trainerID int) ([]AvailabilityWindow, error) {
	query := `
		SELECT id, trainer_id, day_of_week, start_min, end_min, created_at
		FROM trainer_availability
		WHERE trainer_id = $1
		ORDER BY day_of_week, start_min
	`

	var windows []AvailabilityWindow
	err := r.db.SelectContext(ctx, &windows, query, trainerID)
	if err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *repository) DeleteWindow(ctx context.Context, trainerID, windowID int) error {
	query := `DELETE FROM trainer_availability WHERE id = $1 AND trainer_id = $2`

	result, err := r.db.ExecContext(ctx, query, windowID, trainerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}
