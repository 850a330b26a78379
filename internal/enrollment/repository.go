package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Enroll runs the duplicate and capacity checks inside one transaction while
// holding the class row lock, so two concurrent enrollments for the last spot
// serialize and exactly one wins. The capacity invariant lives on a single
// row, so plain row locking is enough here.
func (r *repository) Enroll(ctx context.Context, memberID, classID int) (*Enrollment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cls classInfo
	err = tx.GetContext(ctx, &cls, `
		SELECT id, activity, starts_at, capacity
		FROM classes
		WHERE id = $1
		FOR UPDATE
	`, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	if !cls.StartsAt.After(time.Now()) {
		return nil, ErrClassStarted
	}

	var exists bool
	err = tx.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE member_id = $1 AND class_id = $2)
	`, memberID, classID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyEnrolled
	}

	var enrolled int
	err = tx.GetContext(ctx, &enrolled, `SELECT COUNT(*) FROM enrollments WHERE class_id = $1`, classID)
	if err != nil {
		return nil, err
	}
	if enrolled >= cls.Capacity {
		return nil, &CapacityError{Capacity: cls.Capacity, Enrolled: enrolled}
	}

	var e Enrollment
	err = tx.GetContext(ctx, &e, `
		INSERT INTO enrollments (member_id, class_id)
		VALUES ($1, $2)
		RETURNING id, member_id, class_id, created_at
	`, memberID, classID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) Cancel(ctx context.Context, memberID, classID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var startsAt time.Time
	err = tx.GetContext(ctx, &startsAt, `SELECT starts_at FROM classes WHERE id = $1 FOR UPDATE`, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClassNotFound
		}
		return err
	}

	if !startsAt.After(time.Now()) {
		return ErrClassStarted
	}

	result, err := tx.ExecContext(ctx, `
		DELETE FROM enrollments WHERE member_id = $1 AND class_id = $2
	`, memberID, classID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotEnrolled
	}

	return tx.Commit()
}

func (r *repository) ListForMember(ctx context.Context, memberID int) ([]EnrollmentWithClass, error) {
	query := `
		SELECT
			e.id,
			e.member_id,
			e.class_id,
			e.created_at,
			c.activity,
			c.starts_at,
			c.ends_at,
			t.name AS trainer_name,
			r.name AS room_name
		FROM enrollments e
		JOIN classes c ON e.class_id = c.id
		JOIN trainers t ON c.trainer_id = t.id
		JOIN rooms r ON c.room_id = r.id
		WHERE e.member_id = $1
		ORDER BY c.starts_at ASC
	`

	var enrollments []EnrollmentWithClass
	err := r.db.SelectContext(ctx, &enrollments, query, memberID)
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *repository) ListAvailable(ctx context.Context, memberID int) ([]AvailableClass, error) {
	query := `
		SELECT
			c.id,
			c.activity,
			c.starts_at,
			c.ends_at,
			c.capacity,
			t.name AS trainer_name,
			r.name AS room_name,
			COUNT(e.id) AS enrolled,
			BOOL_OR(e.member_id = $1) IS TRUE AS is_enrolled
		FROM classes c
		JOIN trainers t ON c.trainer_id = t.id
		JOIN rooms r ON c.room_id = r.id
		LEFT JOIN enrollments e ON e.class_id = c.id
		WHERE c.starts_at > NOW()
		GROUP BY c.id, c.activity, c.starts_at, c.ends_at, c.capacity, t.name, r.name
		ORDER BY c.starts_at ASC
	`

	var classes []AvailableClass
	err := r.db.SelectContext(ctx, &classes, query, memberID)
	if err != nil {
		return nil, err
	}

	return classes, nil
}
