package service

import (
	"context"
	"strings"

	"pawhaven/internal/models"
	"pawhaven/internal/repository"
)

// LocationService provides adoption-location business logic.
type LocationService struct {
	locationRepo repository.LocationRepository
}

// LocationInput carries the fields for creating or updating a location.
type LocationInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// NewLocationService returns a new LocationService.
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

func validateLocationInput(in LocationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return models.NewValidationError("Location name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return models.NewValidationError("Address is required")
	}
	return nil
}

// CreateLocation adds a new adoption location. Admin only.
func (s *LocationService) CreateLocation(ctx context.Context, actor models.Actor, in LocationInput) (*models.Location, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can create locations")
	}
	if err := validateLocationInput(in); err != nil {
		return nil, err
	}

	loc := &models.Location{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
	}
	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// GetLocation returns a single location.
func (s *LocationService) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

// ListLocations returns every adoption location, sorted by name.
func (s *LocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	return s.locationRepo.List(ctx)
}

// UpdateLocation replaces the fields of a location. Admin only.
func (s *LocationService) UpdateLocation(ctx context.Context, actor models.Actor, id uint, in LocationInput) (*models.Location, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can update locations")
	}
	if err := validateLocationInput(in); err != nil {
		return nil, err
	}

	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	loc.Name = strings.TrimSpace(in.Name)
	loc.Address = strings.TrimSpace(in.Address)
	loc.Phone = strings.TrimSpace(in.Phone)
	if err := s.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// DeleteLocation removes a location. Admin only.
func (s *LocationService) DeleteLocation(ctx context.Context, actor models.Actor, id uint) error {
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Only admins can delete locations")
	}
	return s.locationRepo.Delete(ctx, id)
}
