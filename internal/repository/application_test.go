package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pawhaven/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestApplicationRepository_Create_DuplicatePending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "adoption_applications"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_applications_pending_unique"})
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.AdoptionApplication{
		PetID:              7,
		UserID:             3,
		Status:             models.ApplicationStatusPending,
		ApplicationMessage: "I have a fenced yard and years of experience with senior dogs.",
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateApplication, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_Create_OtherDBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "adoption_applications"`)).
		WillReturnError(errors.New("connection timeout"))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.AdoptionApplication{PetID: 7, UserID: 3})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "adoption_applications" WHERE "adoption_applications"."id" = $1`)).
		WithArgs(99, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	app, err := repo.GetByID(ctx, 99)
	assert.Nil(t, app)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_ExistsPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "adoption_applications" WHERE user_id = $1 AND pet_id = $2 AND status = $3`)).
			WithArgs(3, 7, string(models.ApplicationStatusPending)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsPending(ctx, 3, 7)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "adoption_applications" WHERE user_id = $1 AND pet_id = $2 AND status = $3`)).
			WithArgs(3, 8, string(models.ApplicationStatusPending)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsPending(ctx, 3, 8)
		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_UpdateStatusIfPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	reviewedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Wins the race", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "adoption_applications" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := repo.UpdateStatusIfPending(ctx, 42, models.ApplicationStatusApproved, nil, 1, reviewedAt)
		assert.NoError(t, err)
		assert.True(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already reviewed", func(t *testing.T) {
		// Zero rows affected: the status guard in the WHERE clause filtered
		// out a row that is no longer pending.
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "adoption_applications" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		notes := "Reference check failed"
		updated, err := repo.UpdateStatusIfPending(ctx, 42, models.ApplicationStatusRejected, &notes, 1, reviewedAt)
		assert.NoError(t, err)
		assert.False(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "adoption_applications" SET`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		updated, err := repo.UpdateStatusIfPending(ctx, 42, models.ApplicationStatusApproved, nil, 1, reviewedAt)
		assert.Error(t, err)
		assert.False(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_ListPendingOldestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	older := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "pet_id", "user_id", "status", "application_date"}).
		AddRow(5, 7, 3, "pending", older).
		AddRow(9, 8, 4, "pending", newer)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "adoption_applications" WHERE status = $1 ORDER BY application_date ASC, id ASC LIMIT $2`)).
		WithArgs(string(models.ApplicationStatusPending), 10).
		WillReturnRows(rows)

	// preloads for the two distinct pets and users
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "pets" WHERE "pets"."id" IN ($1,$2)`)).
		WithArgs(7, 8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Biscuit").AddRow(8, "Mochi"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(3, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(3, "a@example.com").AddRow(4, "b@example.com"))

	apps, err := repo.ListPendingOldestFirst(ctx, 10)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, uint(5), apps[0].ID)
	assert.Equal(t, uint(9), apps[1].ID)
	assert.Equal(t, "Biscuit", apps[0].Pet.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_CountByStatus_ZeroFills(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 3).
		AddRow("approved", 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, count(*) as count FROM "adoption_applications" GROUP BY "status"`)).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[models.ApplicationStatusPending])
	assert.Equal(t, int64(5), counts[models.ApplicationStatusApproved])
	// absent statuses report zero, not a missing key
	assert.Equal(t, int64(0), counts[models.ApplicationStatusRejected])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "adoption_applications" WHERE "adoption_applications"."id" = $1`)).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "adoption_applications" WHERE "adoption_applications"."id" = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
