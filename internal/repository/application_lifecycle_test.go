package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawhaven/internal/database"
	"pawhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupSQLiteDB gives each test a real schema, including the partial unique
// index the duplicate guard relies on. SQLite supports partial indexes, so the
// constraint behaves the same as in Postgres.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedApplicant(t *testing.T, db *gorm.DB) (*models.User, *models.Pet) {
	t.Helper()

	user := &models.User{Email: "adopter@example.com", Password: "x", DisplayName: "Adopter"}
	require.NoError(t, db.Create(user).Error)

	location := &models.Location{Name: "Northside Shelter", Address: "12 Oak St"}
	require.NoError(t, db.Create(location).Error)

	pet := &models.Pet{Name: "Biscuit", Species: "dog", Age: 3, Status: models.PetStatusApproved, LocationID: location.ID}
	require.NoError(t, db.Create(pet).Error)

	return user, pet
}

func pendingApplication(user *models.User, pet *models.Pet, submitted time.Time) *models.AdoptionApplication {
	return &models.AdoptionApplication{
		PetID:              pet.ID,
		UserID:             user.ID,
		Status:             models.ApplicationStatusPending,
		ApplicationMessage: "We have a fenced yard, no small children, and time for daily walks.",
		ContactPhone:       "+1 (555) 123-4567",
		LivingSituation:    models.LivingSituationHouseOwned,
		ApplicationDate:    submitted,
	}
}

func TestApplicationLifecycle_DuplicatePendingBlocked(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	user, pet := seedApplicant(t, db)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, pendingApplication(user, pet, now)))

	// second pending application for the same (user, pet) pair hits the
	// partial unique index
	err := repo.Create(ctx, pendingApplication(user, pet, now))
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateApplication, appErr.Code)
}

func TestApplicationLifecycle_ReapplyAfterRejection(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	user, pet := seedApplicant(t, db)
	now := time.Now().UTC()

	first := pendingApplication(user, pet, now)
	require.NoError(t, repo.Create(ctx, first))

	notes := "Landlord does not allow dogs"
	updated, err := repo.UpdateStatusIfPending(ctx, first.ID, models.ApplicationStatusRejected, &notes, 99, now)
	require.NoError(t, err)
	require.True(t, updated)

	// the index only guards pending rows, so history does not block a retry
	require.NoError(t, repo.Create(ctx, pendingApplication(user, pet, now.Add(time.Hour))))
}

func TestApplicationLifecycle_ConcurrentReviewSingleWinner(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	user, pet := seedApplicant(t, db)
	now := time.Now().UTC()

	app := pendingApplication(user, pet, now)
	require.NoError(t, repo.Create(ctx, app))

	winner, err := repo.UpdateStatusIfPending(ctx, app.ID, models.ApplicationStatusApproved, nil, 99, now)
	require.NoError(t, err)
	assert.True(t, winner)

	// the losing reviewer matches zero rows
	notes := "Second reviewer"
	loser, err := repo.UpdateStatusIfPending(ctx, app.ID, models.ApplicationStatusRejected, &notes, 100, now)
	require.NoError(t, err)
	assert.False(t, loser)

	// the winning decision sticks
	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, got.Status)
	require.NotNil(t, got.ReviewedByUserID)
	assert.Equal(t, uint(99), *got.ReviewedByUserID)
	assert.Nil(t, got.AdminNotes)
}

func TestApplicationLifecycle_QueueOrdering(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	user, pet := seedApplicant(t, db)
	now := time.Now().UTC()

	other := &models.User{Email: "second@example.com", Password: "x", DisplayName: "Second"}
	require.NoError(t, db.Create(other).Error)
	location := &models.Location{Name: "Annex", Address: "3 Elm St"}
	require.NoError(t, db.Create(location).Error)
	petB := &models.Pet{Name: "Mochi", Species: "cat", Age: 2, Status: models.PetStatusApproved, LocationID: location.ID}
	require.NoError(t, db.Create(petB).Error)

	newest := pendingApplication(user, pet, now.Add(-time.Hour))
	oldest := pendingApplication(other, pet, now.Add(-72*time.Hour))
	middle := pendingApplication(user, petB, now.Add(-24*time.Hour))
	for _, a := range []*models.AdoptionApplication{newest, oldest, middle} {
		require.NoError(t, repo.Create(ctx, a))
	}

	queue, err := repo.ListPendingOldestFirst(ctx, 10)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, oldest.ID, queue[0].ID)
	assert.Equal(t, middle.ID, queue[1].ID)
	assert.Equal(t, newest.ID, queue[2].ID)

	// limit truncates from the tail, keeping the longest waiting rows
	top, err := repo.ListPendingOldestFirst(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, oldest.ID, top[0].ID)
}

func TestApplicationLifecycle_ExistsPendingIgnoresHistory(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()
	user, pet := seedApplicant(t, db)
	now := time.Now().UTC()

	app := pendingApplication(user, pet, now)
	require.NoError(t, repo.Create(ctx, app))

	exists, err := repo.ExistsPending(ctx, user.ID, pet.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	notes := "Reference check failed"
	_, err = repo.UpdateStatusIfPending(ctx, app.ID, models.ApplicationStatusRejected, &notes, 99, now)
	require.NoError(t, err)

	exists, err = repo.ExistsPending(ctx, user.ID, pet.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplicationLifecycle_GetByIDNotFound(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewApplicationRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
