// Package service contains business logic for the application
package service

import (
	"context"
	"strings"
	"time"

	"pawhaven/internal/models"
	"pawhaven/internal/repository"
	"pawhaven/internal/validation"
)

// SubmitApplicationInput carries the fields an applicant provides when
// applying to adopt a pet.
type SubmitApplicationInput struct {
	PetID              uint                   `json:"pet_id"`
	ApplicationMessage string                 `json:"application_message"`
	ContactPhone       string                 `json:"contact_phone"`
	LivingSituation    models.LivingSituation `json:"living_situation"`
	HasOtherPets       bool                   `json:"has_other_pets"`
	OtherPetsDetails   *string                `json:"other_pets_details,omitempty"`
}

// ApplicationSummary is the denormalized view returned by list, detail and
// queue endpoints. DaysWaiting is computed at read time, never stored.
type ApplicationSummary struct {
	ApplicationID      uint                     `json:"application_id"`
	PetID              uint                     `json:"pet_id"`
	PetName            string                   `json:"pet_name,omitempty"`
	PetSpecies         string                   `json:"pet_species,omitempty"`
	PetAge             int                      `json:"pet_age,omitempty"`
	PetPhotoURL        string                   `json:"pet_photo_url,omitempty"`
	UserID             uint                     `json:"user_id"`
	UserEmail          string                   `json:"user_email,omitempty"`
	UserDisplayName    string                   `json:"user_display_name,omitempty"`
	Status             models.ApplicationStatus `json:"status"`
	ApplicationMessage string                   `json:"application_message"`
	ContactPhone       string                   `json:"contact_phone"`
	LivingSituation    models.LivingSituation   `json:"living_situation"`
	HasOtherPets       bool                     `json:"has_other_pets"`
	OtherPetsDetails   *string                  `json:"other_pets_details,omitempty"`
	ApplicationDate    time.Time                `json:"application_date"`
	ReviewedAt         *time.Time               `json:"reviewed_at"`
	AdminNotes         *string                  `json:"admin_notes,omitempty"`
	DaysWaiting        int                      `json:"days_waiting"`
}

// ApplicationStats aggregates application counts by status.
type ApplicationStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// ApplicationService provides adoption-application business logic.
type ApplicationService struct {
	appRepo repository.ApplicationRepository
	petRepo repository.PetRepository
	now     func() time.Time
}

// NewApplicationService returns a new ApplicationService.
func NewApplicationService(appRepo repository.ApplicationRepository, petRepo repository.PetRepository) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		petRepo: petRepo,
		now:     time.Now,
	}
}

func (s *ApplicationService) summarize(app *models.AdoptionApplication) ApplicationSummary {
	out := ApplicationSummary{
		ApplicationID:      app.ID,
		PetID:              app.PetID,
		UserID:             app.UserID,
		Status:             app.Status,
		ApplicationMessage: app.ApplicationMessage,
		ContactPhone:       app.ContactPhone,
		LivingSituation:    app.LivingSituation,
		HasOtherPets:       app.HasOtherPets,
		OtherPetsDetails:   app.OtherPetsDetails,
		ApplicationDate:    app.ApplicationDate,
		ReviewedAt:         app.ReviewedAt,
		AdminNotes:         app.AdminNotes,
		DaysWaiting:        app.DaysWaiting(s.now()),
	}
	if app.Pet != nil {
		out.PetName = app.Pet.Name
		out.PetSpecies = app.Pet.Species
		out.PetAge = app.Pet.Age
		out.PetPhotoURL = app.Pet.PhotoURL
	}
	if app.User != nil {
		out.UserEmail = app.User.Email
		out.UserDisplayName = app.User.DisplayName
	}
	return out
}

func (s *ApplicationService) summarizeAll(apps []models.AdoptionApplication) []ApplicationSummary {
	out := make([]ApplicationSummary, 0, len(apps))
	for i := range apps {
		out = append(out, s.summarize(&apps[i]))
	}
	return out
}

func validateSubmitInput(input SubmitApplicationInput) error {
	if err := validation.ValidateApplicationMessage(input.ApplicationMessage); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePhone(input.ContactPhone); err != nil {
		return models.NewValidationError(err.Error())
	}
	if !input.LivingSituation.Valid() {
		return models.NewValidationError("Invalid living situation")
	}
	if err := validation.ValidateOtherPetsDetails(input.HasOtherPets, input.OtherPetsDetails); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// Submit creates a new pending application for the actor. Admin accounts
// cannot apply. At most one pending application may exist per (actor, pet)
// pair; a second submit fails even when the first is still unreviewed.
func (s *ApplicationService) Submit(ctx context.Context, actor models.Actor, input SubmitApplicationInput) (*models.AdoptionApplication, error) {
	if actor.IsAdmin() {
		return nil, models.NewForbiddenError("Admin accounts cannot submit adoption applications")
	}

	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	if _, err := s.petRepo.GetByID(ctx, input.PetID); err != nil {
		return nil, err
	}

	exists, err := s.appRepo.ExistsPending(ctx, actor.ID, input.PetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateApplicationError(input.PetID)
	}

	app := &models.AdoptionApplication{
		PetID:              input.PetID,
		UserID:             actor.ID,
		Status:             models.ApplicationStatusPending,
		ApplicationMessage: strings.TrimSpace(input.ApplicationMessage),
		ContactPhone:       strings.TrimSpace(input.ContactPhone),
		LivingSituation:    input.LivingSituation,
		HasOtherPets:       input.HasOtherPets,
		OtherPetsDetails:   input.OtherPetsDetails,
		ApplicationDate:    s.now().UTC(),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		// A racing submit can slip past the ExistsPending check; the partial
		// unique index turns it into a duplicate error here.
		return nil, err
	}

	return s.appRepo.GetByID(ctx, app.ID)
}

// Review moves a pending application to approved or rejected. Only admins may
// review; rejections require non-empty admin notes. The update is conditional
// on the row still being pending, so concurrent reviews resolve to one winner
// and the loser sees InvalidTransition.
func (s *ApplicationService) Review(ctx context.Context, actor models.Actor, id uint, status models.ApplicationStatus, adminNotes *string) (*models.AdoptionApplication, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can review applications")
	}

	if !status.IsTerminal() {
		return nil, models.NewValidationError("Status must be approved or rejected")
	}

	var notes *string
	if adminNotes != nil {
		trimmed := strings.TrimSpace(*adminNotes)
		if trimmed != "" {
			notes = &trimmed
		}
	}
	if status == models.ApplicationStatusRejected && notes == nil {
		return nil, models.NewValidationError("Admin notes are required when rejecting an application")
	}

	updated, err := s.appRepo.UpdateStatusIfPending(ctx, id, status, notes, actor.ID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !updated {
		app, err := s.appRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, models.NewInvalidTransitionError(app.Status)
	}

	return s.appRepo.GetByID(ctx, id)
}

// ListApplications returns applications visible to the actor: their own rows
// for regular users, every row for admins. The optional status filter narrows
// either set.
func (s *ApplicationService) ListApplications(ctx context.Context, actor models.Actor, status *models.ApplicationStatus) ([]ApplicationSummary, error) {
	if status != nil && !status.Valid() {
		return nil, models.NewValidationError("Invalid status filter")
	}

	var (
		apps []models.AdoptionApplication
		err  error
	)
	if actor.IsAdmin() {
		apps, err = s.appRepo.List(ctx, status)
	} else {
		apps, err = s.appRepo.ListByApplicant(ctx, actor.ID, status)
	}
	if err != nil {
		return nil, err
	}

	return s.summarizeAll(apps), nil
}

// GetApplication returns a single application. Regular users may only read
// their own.
func (s *ApplicationService) GetApplication(ctx context.Context, actor models.Actor, id uint) (*ApplicationSummary, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && app.UserID != actor.ID {
		return nil, models.NewForbiddenError("You can only view your own applications")
	}

	summary := s.summarize(app)
	return &summary, nil
}

// PendingQueue returns up to limit pending applications ranked by descending
// wait time. Ordering by submission time ascending gives that ranking; ties
// fall back to application id ascending.
func (s *ApplicationService) PendingQueue(ctx context.Context, actor models.Actor, limit int) ([]ApplicationSummary, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can view the review queue")
	}

	apps, err := s.appRepo.ListPendingOldestFirst(ctx, limit)
	if err != nil {
		return nil, err
	}

	return s.summarizeAll(apps), nil
}

// Stats returns application counts by status for the admin dashboard.
func (s *ApplicationService) Stats(ctx context.Context, actor models.Actor) (*ApplicationStats, error) {
	if !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can view application stats")
	}

	counts, err := s.appRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ApplicationStats{
		Pending:  counts[models.ApplicationStatusPending],
		Approved: counts[models.ApplicationStatusApproved],
		Rejected: counts[models.ApplicationStatusRejected],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}

// DeleteApplication removes an application regardless of status. Admin only.
func (s *ApplicationService) DeleteApplication(ctx context.Context, actor models.Actor, id uint) error {
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Only admins can delete applications")
	}
	return s.appRepo.Delete(ctx, id)
}
