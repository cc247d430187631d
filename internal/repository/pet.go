package repository

import (
	"context"
	"errors"

	"pawhaven/internal/models"

	"gorm.io/gorm"
)

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id uint) (*models.Pet, error)
	List(ctx context.Context, status *models.PetStatus) ([]models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id uint) error
}

// petRepository implements PetRepository
type petRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).Preload("Location").First(&pet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &pet, nil
}

func (r *petRepository) List(ctx context.Context, status *models.PetStatus) ([]models.Pet, error) {
	var pets []models.Pet

	// Newest listings first, matching the public browse page.
	q := r.db.WithContext(ctx).Preload("Location").Order("id DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Find(&pets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return pets, nil
}

func (r *petRepository) Update(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Save(pet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Pet{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Pet", id)
	}
	return nil
}
