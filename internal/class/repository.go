package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gymflow/internal/schedule"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// runTx executes fn inside a serializable transaction. Row locks taken inside
// fn serialize writers touching the same trainer/room/class; writers on
// unrelated resources do not contend.
func (r *repository) runTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// withRetry retries once on a serialization abort, then surfaces the failure
// as a StorageError. Business outcomes (conflicts etc.) are never retried.
func (r *repository) withRetry(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	err := r.runTx(ctx, fn)
	if isSerializationFailure(err) {
		err = r.runTx(ctx, fn)
		if isSerializationFailure(err) {
			return &StorageError{Op: op, Err: err}
		}
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure / deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// lockResources takes the trainer and room row locks in a fixed order so two
// writers touching the same pair cannot deadlock.
func lockResources(ctx context.Context, tx *sqlx.Tx, trainerID, roomID int) error {
	var id int
	if err := tx.GetContext(ctx, &id, `SELECT id FROM trainers WHERE id = $1 FOR UPDATE`, trainerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := tx.GetContext(ctx, &id, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}

	return nil
}

// findConflict scans the classes bound to one resource and reports the first
// one whose window overlaps the candidate. excludeID skips the class being
// updated from its own scan; pass 0 when scheduling.
func findConflict(ctx context.Context, tx *sqlx.Tx, column string, resourceID, excludeID int, window schedule.TimeWindow, kind ConflictKind) error {
	var rows []Class
	query := `
		SELECT id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
		FROM classes
		WHERE ` + column + ` = $1 AND id != $2
	`
	if err := tx.SelectContext(ctx, &rows, query, resourceID, excludeID); err != nil {
		return err
	}

	for _, existing := range rows {
		if schedule.Overlaps(window, schedule.TimeWindow{Start: existing.StartsAt, End: existing.EndsAt}) {
			return &ConflictError{Kind: kind, ClassID: existing.ID}
		}
	}

	return nil
}

func (r *repository) Schedule(ctx context.Context, trainerID, roomID int, activity string, window schedule.TimeWindow, capacity int) (*Class, error) {
	var created Class

	err := r.withRetry(ctx, "schedule class", func(tx *sqlx.Tx) error {
		if err := lockResources(ctx, tx, trainerID, roomID); err != nil {
			return err
		}

		// Trainer is checked before room; the first conflict wins.
		if err := findConflict(ctx, tx, "trainer_id", trainerID, 0, window, TrainerBusy); err != nil {
			return err
		}
		if err := findConflict(ctx, tx, "room_id", roomID, 0, window, RoomBusy); err != nil {
			return err
		}

		return tx.GetContext(ctx, &created, `
			INSERT INTO classes (trainer_id, room_id, activity, starts_at, ends_at, capacity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
		`, trainerID, roomID, activity, window.Start, window.End, capacity)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, classID int, patch Patch) (*Class, error) {
	var updated Class

	err := r.withRetry(ctx, "update class", func(tx *sqlx.Tx) error {
		var current Class
		err := tx.GetContext(ctx, &current, `
			SELECT id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
			FROM classes
			WHERE id = $1
			FOR UPDATE
		`, classID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrClassNotFound
			}
			return err
		}

		effective := current
		if patch.Activity != nil {
			effective.Activity = *patch.Activity
		}
		if patch.TrainerID != nil {
			effective.TrainerID = *patch.TrainerID
		}
		if patch.RoomID != nil {
			effective.RoomID = *patch.RoomID
		}
		if patch.StartsAt != nil {
			w := schedule.NewClassWindow(*patch.StartsAt)
			effective.StartsAt = w.Start
			effective.EndsAt = w.End
		}

		if err := lockResources(ctx, tx, effective.TrainerID, effective.RoomID); err != nil {
			return err
		}

		window := schedule.TimeWindow{Start: effective.StartsAt, End: effective.EndsAt}

		// The class being updated is excluded from its own scan, otherwise
		// every update would collide with its prior state.
		if err := findConflict(ctx, tx, "trainer_id", effective.TrainerID, classID, window, TrainerBusy); err != nil {
			return err
		}
		if err := findConflict(ctx, tx, "room_id", effective.RoomID, classID, window, RoomBusy); err != nil {
			return err
		}

		return tx.GetContext(ctx, &updated, `
			UPDATE classes
			SET trainer_id = $1, room_id = $2, activity = $3, starts_at = $4, ends_at = $5
			WHERE id = $6
			RETURNING id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
		`, effective.TrainerID, effective.RoomID, effective.Activity, effective.StartsAt, effective.EndsAt, classID)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, classID int) error {
	return r.withRetry(ctx, "delete class", func(tx *sqlx.Tx) error {
		var id int
		err := tx.GetContext(ctx, &id, `SELECT id FROM classes WHERE id = $1 FOR UPDATE`, classID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrClassNotFound
			}
			return err
		}

		var enrollments int
		err = tx.GetContext(ctx, &enrollments, `SELECT COUNT(*) FROM enrollments WHERE class_id = $1`, classID)
		if err != nil {
			return err
		}
		if enrollments > 0 {
			return &IntegrityError{Enrollments: enrollments}
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, classID)
		return err
	})
}

func (r *repository) GetByID(ctx context.Context, id int) (*Class, error) {
	query := `
		SELECT id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
		FROM classes
		WHERE id = $1
	`

	var cl Class
	err := r.db.GetContext(ctx, &cl, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &cl, nil
}

func (r *repository) GetAll(ctx context.Context) ([]ClassWithDetails, error) {
	query := `
		SELECT
			c.id,
			c.trainer_id,
			c.room_id,
			c.activity,
			c.starts_at,
			c.ends_at,
			c.capacity,
			c.created_at,
			t.name AS trainer_name,
			r.name AS room_name
		FROM classes c
		JOIN trainers t ON c.trainer_id = t.id
		JOIN rooms r ON c.room_id = r.id
		ORDER BY c.starts_at ASC
	`

	var classes []ClassWithDetails
	err := r.db.SelectContext(ctx, &classes, query)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) GetByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]Class, error) {
	query := `
		SELECT id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
		FROM classes
		WHERE trainer_id = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at ASC
	`

	var classes []Class
	err := r.db.SelectContext(ctx, &classes, query, trainerID, from, to)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) FindAvailableTrainers(ctx context.Context, window schedule.TimeWindow) ([]int, error) {
	var trainerIDs []int
	err := r.db.SelectContext(ctx, &trainerIDs, `SELECT id FROM trainers ORDER BY id`)
	if err != nil {
		return nil, err
	}

	var classes []Class
	err = r.db.SelectContext(ctx, &classes, `
		SELECT id, trainer_id, room_id, activity, starts_at, ends_at, capacity, created_at
		FROM classes
	`)
	if err != nil {
		return nil, err
	}

	busy := make(map[int]bool)
	for _, cl := range classes {
		if schedule.Overlaps(window, schedule.TimeWindow{Start: cl.StartsAt, End: cl.EndsAt}) {
			busy[cl.TrainerID] = true
		}
	}

	available := make([]int, 0, len(trainerIDs))
	for _, id := range trainerIDs {
		if !busy[id] {
			available = append(available, id)
		}
	}

	return available, nil
}
