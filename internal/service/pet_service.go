package service

import (
	"context"
	"strings"

	"pawhaven/internal/models"
	"pawhaven/internal/repository"
)

// PetService provides pet-listing business logic.
type PetService struct {
	petRepo      repository.PetRepository
	locationRepo repository.LocationRepository
}

// PetInput carries the fields for creating or updating a pet listing.
type PetInput struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         int    `json:"age"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	LocationID  uint   `json:"location_id"`
}

// NewPetService returns a new PetService.
func NewPetService(petRepo repository.PetRepository, locationRepo repository.LocationRepository) *PetService {
	return &PetService{petRepo: petRepo, locationRepo: locationRepo}
}

func validatePetInput(in PetInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return models.NewValidationError("Pet name is required")
	}
	if len(in.Name) > 120 {
		return models.NewValidationError("Pet name too long (max 120 characters)")
	}
	if strings.TrimSpace(in.Species) == "" {
		return models.NewValidationError("Species is required")
	}
	if in.Age < 0 || in.Age > 50 {
		return models.NewValidationError("Age must be between 0 and 50")
	}
	return nil
}

// CreatePet registers a new listing. Listings created by regular users start
// pending and only become visible after admin approval; admin-created
// listings are approved immediately.
func (s *PetService) CreatePet(ctx context.Context, actor models.Actor, in PetInput) (*models.Pet, error) {
	if err := validatePetInput(in); err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, in.LocationID); err != nil {
		return nil, err
	}

	status := models.PetStatusPending
	if actor.IsAdmin() {
		status = models.PetStatusApproved
	}

	pet := &models.Pet{
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Age:         in.Age,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
		Status:      status,
		LocationID:  in.LocationID,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	return s.petRepo.GetByID(ctx, pet.ID)
}

// GetPet returns a single pet with its location.
func (s *PetService) GetPet(ctx context.Context, id uint) (*models.Pet, error) {
	return s.petRepo.GetByID(ctx, id)
}

// ListPets returns pets visible to the actor: approved listings for everyone,
// all listings for admins. Admins may narrow with an explicit status filter.
func (s *PetService) ListPets(ctx context.Context, actor models.Actor, status *models.PetStatus) ([]models.Pet, error) {
	if !actor.IsAdmin() {
		approved := models.PetStatusApproved
		return s.petRepo.List(ctx, &approved)
	}
	return s.petRepo.List(ctx, status)
}

// UpdatePet replaces the mutable fields of a listing. Admin only.
func (s *PetService) UpdatePet(ctx context.Context, actor models.Actor, id uint, in PetInput) (*models.Pet, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can update pets")
	}
	if err := validatePetInput(in); err != nil {
		return nil, err
	}

	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.LocationID != pet.LocationID {
		if _, err := s.locationRepo.GetByID(ctx, in.LocationID); err != nil {
			return nil, err
		}
	}

	pet.Name = strings.TrimSpace(in.Name)
	pet.Species = strings.TrimSpace(in.Species)
	pet.Age = in.Age
	pet.Description = in.Description
	pet.PhotoURL = in.PhotoURL
	pet.LocationID = in.LocationID
	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}

	return s.petRepo.GetByID(ctx, id)
}

// ApprovePet makes a pending listing publicly visible. Admin only.
func (s *PetService) ApprovePet(ctx context.Context, actor models.Actor, id uint) (*models.Pet, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can approve pets")
	}

	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet.Status == models.PetStatusApproved {
		return pet, nil
	}

	pet.Status = models.PetStatusApproved
	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// DeletePet removes a listing. Admin only.
func (s *PetService) DeletePet(ctx context.Context, actor models.Actor, id uint) error {
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Only admins can delete pets")
	}
	return s.petRepo.Delete(ctx, id)
}
