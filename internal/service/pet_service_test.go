package service

import (
	"context"
	"testing"

	"pawhaven/internal/models"
)

type locationRepoStub struct {
	createFn  func(context.Context, *models.Location) error
	getByIDFn func(context.Context, uint) (*models.Location, error)
	listFn    func(context.Context) ([]models.Location, error)
	updateFn  func(context.Context, *models.Location) error
	deleteFn  func(context.Context, uint) error
}

func (s *locationRepoStub) Create(ctx context.Context, loc *models.Location) error {
	return s.createFn(ctx, loc)
}
func (s *locationRepoStub) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	return s.getByIDFn(ctx, id)
}
func (s *locationRepoStub) List(ctx context.Context) ([]models.Location, error) {
	return s.listFn(ctx)
}
func (s *locationRepoStub) Update(ctx context.Context, loc *models.Location) error {
	return s.updateFn(ctx, loc)
}
func (s *locationRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopLocationRepo() *locationRepoStub {
	return &locationRepoStub{
		createFn:  func(context.Context, *models.Location) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Location, error) { return &models.Location{ID: id}, nil },
		listFn:    func(context.Context) ([]models.Location, error) { return nil, nil },
		updateFn:  func(context.Context, *models.Location) error { return nil },
		deleteFn:  func(context.Context, uint) error { return nil },
	}
}

func TestPetServiceCreateValidation(t *testing.T) {
	svc := NewPetService(noopPetRepo(), noopLocationRepo())
	_, err := svc.CreatePet(context.Background(), adopter, PetInput{Name: "", Species: "dog", LocationID: 1})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestPetServiceCreateUnknownLocation(t *testing.T) {
	locRepo := noopLocationRepo()
	locRepo.getByIDFn = func(_ context.Context, id uint) (*models.Location, error) {
		return nil, models.NewNotFoundError("Location", id)
	}
	svc := NewPetService(noopPetRepo(), locRepo)
	_, err := svc.CreatePet(context.Background(), adopter, PetInput{Name: "Rex", Species: "dog", Age: 3, LocationID: 9})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPetServiceCreateStatusByRole(t *testing.T) {
	var created *models.Pet
	petRepo := noopPetRepo()
	petRepo.createFn = func(_ context.Context, pet *models.Pet) error {
		pet.ID = 11
		created = pet
		return nil
	}
	petRepo.getByIDFn = func(context.Context, uint) (*models.Pet, error) { return created, nil }

	svc := NewPetService(petRepo, noopLocationRepo())

	if _, err := svc.CreatePet(context.Background(), adopter, PetInput{Name: "Rex", Species: "dog", Age: 3, LocationID: 1}); err != nil {
		t.Fatalf("user create failed: %v", err)
	}
	if created.Status != models.PetStatusPending {
		t.Fatalf("user-created listing must start pending, got %s", created.Status)
	}

	if _, err := svc.CreatePet(context.Background(), reviewer, PetInput{Name: "Mia", Species: "cat", Age: 2, LocationID: 1}); err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if created.Status != models.PetStatusApproved {
		t.Fatalf("admin-created listing must be approved, got %s", created.Status)
	}
}

func TestPetServiceListHidesPendingFromUsers(t *testing.T) {
	petRepo := noopPetRepo()
	var gotStatus *models.PetStatus
	petRepo.listFn = func(_ context.Context, status *models.PetStatus) ([]models.Pet, error) {
		gotStatus = status
		return nil, nil
	}

	svc := NewPetService(petRepo, noopLocationRepo())

	if _, err := svc.ListPets(context.Background(), adopter, nil); err != nil {
		t.Fatalf("user list failed: %v", err)
	}
	if gotStatus == nil || *gotStatus != models.PetStatusApproved {
		t.Fatalf("user list must be forced to approved, got %v", gotStatus)
	}

	if _, err := svc.ListPets(context.Background(), reviewer, nil); err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if gotStatus != nil {
		t.Fatalf("admin list without filter must see all statuses, got %v", gotStatus)
	}
}

func TestPetServiceApproveIdempotent(t *testing.T) {
	petRepo := noopPetRepo()
	petRepo.getByIDFn = func(_ context.Context, id uint) (*models.Pet, error) {
		return &models.Pet{ID: id, Status: models.PetStatusApproved}, nil
	}
	updates := 0
	petRepo.updateFn = func(context.Context, *models.Pet) error {
		updates++
		return nil
	}

	svc := NewPetService(petRepo, noopLocationRepo())
	pet, err := svc.ApprovePet(context.Background(), reviewer, 4)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if pet.Status != models.PetStatusApproved {
		t.Fatalf("expected approved, got %s", pet.Status)
	}
	if updates != 0 {
		t.Fatal("approving an approved listing must not write")
	}
}

func TestPetServiceAdminOnlyMutations(t *testing.T) {
	svc := NewPetService(noopPetRepo(), noopLocationRepo())

	if _, err := svc.UpdatePet(context.Background(), adopter, 1, PetInput{}); err == nil {
		t.Fatal("expected forbidden")
	}
	if _, err := svc.ApprovePet(context.Background(), adopter, 1); err == nil {
		t.Fatal("expected forbidden")
	}
	assertAppErrorCode(t, svc.DeletePet(context.Background(), adopter, 1), models.CodeForbidden)
}

func TestLocationServiceAdminOnly(t *testing.T) {
	svc := NewLocationService(noopLocationRepo())

	_, err := svc.CreateLocation(context.Background(), adopter, LocationInput{Name: "Shelter", Address: "1 Main St"})
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = svc.UpdateLocation(context.Background(), adopter, 1, LocationInput{Name: "Shelter", Address: "1 Main St"})
	assertAppErrorCode(t, err, models.CodeForbidden)

	assertAppErrorCode(t, svc.DeleteLocation(context.Background(), adopter, 1), models.CodeForbidden)
}

func TestLocationServiceCreateTrimsFields(t *testing.T) {
	var created *models.Location
	locRepo := noopLocationRepo()
	locRepo.createFn = func(_ context.Context, loc *models.Location) error {
		created = loc
		return nil
	}

	svc := NewLocationService(locRepo)
	_, err := svc.CreateLocation(context.Background(), reviewer, LocationInput{
		Name:    "  Paws & Claws  ",
		Address: " 12 Harbor Rd ",
		Phone:   " 555-0100 ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Paws & Claws" || created.Address != "12 Harbor Rd" || created.Phone != "555-0100" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
}
