package trainer

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func windowColumns() []string {
	return []string{"id", "trainer_id", "day_of_week", "start_min", "end_min", "created_at"}
}

func TestAddWindow_Success(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM trainers WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`WHERE trainer_id = \$1 AND day_of_week = \$2`).
		WithArgs(1, time.Monday).
		WillReturnRows(sqlmock.NewRows(windowColumns()))
	mock.ExpectQuery(`INSERT INTO trainer_availability`).
		WithArgs(1, time.Monday, 540, 720).
		WillReturnRows(sqlmock.NewRows(windowColumns()).
			AddRow(5, 1, int(time.Monday), 540, 720, time.Now()))
	mock.ExpectCommit()

	window, err := repo.AddWindow(context.Background(), 1, time.Monday, 540, 720)
	require.NoError(t, err)
	require.Equal(t, 5, window.ID)
	require.Equal(t, "09:00", window.StartClock())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddWindow_Overlap(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM trainers WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// Existing Monday window 10:00-12:00 overlaps the candidate 11:00-13:00.
	mock.ExpectQuery(`WHERE trainer_id = \$1 AND day_of_week = \$2`).
		WithArgs(1, time.Monday).
		WillReturnRows(sqlmock.NewRows(windowColumns()).
			AddRow(3, 1, int(time.Monday), 600, 720, time.Now()))
	mock.ExpectRollback()

	_, err := repo.AddWindow(context.Background(), 1, time.Monday, 660, 780)

	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	require.Equal(t, 3, overlap.Existing.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddWindow_TouchingAllowed(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM trainers WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// Existing window ends exactly where the new one starts.
	mock.ExpectQuery(`WHERE trainer_id = \$1 AND day_of_week = \$2`).
		WithArgs(1, time.Monday).
		WillReturnRows(sqlmock.NewRows(windowColumns()).
			AddRow(3, 1, int(time.Monday), 540, 660, time.Now()))
	mock.ExpectQuery(`INSERT INTO trainer_availability`).
		WithArgs(1, time.Monday, 660, 780).
		WillReturnRows(sqlmock.NewRows(windowColumns()).
			AddRow(4, 1, int(time.Monday), 660, 780, time.Now()))
	mock.ExpectCommit()

	window, err := repo.AddWindow(context.Background(), 1, time.Monday, 660, 780)
	require.NoError(t, err)
	require.Equal(t, 4, window.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddWindow_TrainerNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM trainers WHERE id = \$1 FOR UPDATE`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.AddWindow(context.Background(), 99, time.Monday, 540, 720)
	require.ErrorIs(t, err, ErrTrainerNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWindow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(`DELETE FROM trainer_availability WHERE id = \$1 AND trainer_id = \$2`).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteWindow(context.Background(), 1, 5))

	mock.ExpectExec(`DELETE FROM trainer_availability WHERE id = \$1 AND trainer_id = \$2`).
		WithArgs(6, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteWindow(context.Background(), 1, 6)
	require.ErrorIs(t, err, ErrWindowNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
