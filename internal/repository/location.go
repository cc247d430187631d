package repository

import (
	"context"
	"errors"

	"pawhaven/internal/models"

	"gorm.io/gorm"
)

// LocationRepository defines the interface for adoption-location data operations
type LocationRepository interface {
	Create(ctx context.Context, loc *models.Location) error
	GetByID(ctx context.Context, id uint) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Update(ctx context.Context, loc *models.Location) error
	Delete(ctx context.Context, id uint) error
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, loc *models.Location) error {
	if err := r.db.WithContext(ctx).Create(loc).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Location", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &loc, nil
}

func (r *locationRepository) List(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if err := r.db.WithContext(ctx).Order("lower(name) ASC").Find(&locs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return locs, nil
}

func (r *locationRepository) Update(ctx context.Context, loc *models.Location) error {
	if err := r.db.WithContext(ctx).Save(loc).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Location{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Location", id)
	}
	return nil
}
