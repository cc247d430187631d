// Package repository provides data access interfaces and implementations
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"pawhaven/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for adoption-application data
// operations.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.AdoptionApplication) error
	GetByID(ctx context.Context, id uint) (*models.AdoptionApplication, error)
	ListByApplicant(ctx context.Context, applicantID uint, status *models.ApplicationStatus) ([]models.AdoptionApplication, error)
	List(ctx context.Context, status *models.ApplicationStatus) ([]models.AdoptionApplication, error)
	ListPendingOldestFirst(ctx context.Context, limit int) ([]models.AdoptionApplication, error)
	ExistsPending(ctx context.Context, applicantID, petID uint) (bool, error)
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
	UpdateStatusIfPending(ctx context.Context, id uint, status models.ApplicationStatus, adminNotes *string, reviewedBy uint, reviewedAt time.Time) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// applicationRepository implements ApplicationRepository
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// isPendingUniqueViolation reports whether err comes from the partial unique
// index guarding one pending application per (user, pet) pair.
func isPendingUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (used in tests) reports the same constraint as a plain string.
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func (r *applicationRepository) Create(ctx context.Context, app *models.AdoptionApplication) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if isPendingUniqueViolation(err) {
			return models.NewDuplicateApplicationError(app.PetID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.AdoptionApplication, error) {
	var app models.AdoptionApplication
	if err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("User").
		First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &app, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uint, status *models.ApplicationStatus) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Where("user_id = ?", applicantID).
		Order("application_date DESC, id DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return apps, nil
}

func (r *applicationRepository) List(ctx context.Context, status *models.ApplicationStatus) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("User").
		Order("application_date DESC, id DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return apps, nil
}

// ListPendingOldestFirst returns pending applications ordered so the longest
// waiting applicant comes first. Submission time ascending equals wait time
// descending; id breaks ties for rows created within the same instant.
func (r *applicationRepository) ListPendingOldestFirst(ctx context.Context, limit int) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("User").
		Where("status = ?", models.ApplicationStatusPending).
		Order("application_date ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return apps, nil
}

func (r *applicationRepository) ExistsPending(ctx context.Context, applicantID, petID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AdoptionApplication{}).
		Where("user_id = ? AND pet_id = ? AND status = ?", applicantID, petID, models.ApplicationStatusPending).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	type statusCount struct {
		Status models.ApplicationStatus
		Count  int64
	}

	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.AdoptionApplication{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := map[models.ApplicationStatus]int64{
		models.ApplicationStatusPending:  0,
		models.ApplicationStatusApproved: 0,
		models.ApplicationStatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// UpdateStatusIfPending atomically moves a pending application to a terminal
// status. It returns false when no row was updated, which means the
// application either does not exist or has already been reviewed; callers
// re-read to tell the two apart. The WHERE clause on status makes concurrent
// reviews of the same application resolve to exactly one winner.
func (r *applicationRepository) UpdateStatusIfPending(ctx context.Context, id uint, status models.ApplicationStatus, adminNotes *string, reviewedBy uint, reviewedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.AdoptionApplication{}).
		Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":              status,
			"admin_notes":         adminNotes,
			"reviewed_at":         reviewedAt,
			"reviewed_by_user_id": reviewedBy,
			"updated_at":          reviewedAt,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.AdoptionApplication{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Application", id)
	}
	return nil
}
