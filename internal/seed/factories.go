// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pawhaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var (
	species = []string{"dog", "cat", "rabbit", "bird", "guinea pig", "hamster"}

	petNames = []string{
		"Biscuit", "Mochi", "Pepper", "Luna", "Milo", "Hazel", "Waffles",
		"Clementine", "Otis", "Poppy", "Gus", "Marble", "Pickles", "Juniper",
		"Banjo", "Olive", "Rocket", "Maple", "Ziggy", "Clover",
	}

	livingSituations = []models.LivingSituation{
		models.LivingSituationHouseOwned,
		models.LivingSituationHouseRented,
		models.LivingSituationApartmentOwned,
		models.LivingSituationApartmentRented,
		models.LivingSituationOther,
	}
)

// CreateUser constructs and persists a sample adopter account.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateLocation constructs and persists a sample shelter.
func (f *Factory) CreateLocation(overrides ...func(*models.Location)) (*models.Location, error) {
	location := &models.Location{
		Name:    fmt.Sprintf("%s Animal Shelter", gofakeit.City()),
		Address: gofakeit.Address().Address,
		Phone:   gofakeit.Phone(),
	}

	for _, override := range overrides {
		override(location)
	}

	if err := f.db.Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// CreatePet constructs and persists a sample pet listing at the given location.
func (f *Factory) CreatePet(location *models.Location, overrides ...func(*models.Pet)) (*models.Pet, error) {
	name := petNames[f.rng.Intn(len(petNames))]
	pet := &models.Pet{
		Name:        name,
		Species:     species[f.rng.Intn(len(species))],
		Age:         f.rng.Intn(15),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		PhotoURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Status:      models.PetStatusApproved,
		LocationID:  location.ID,
	}

	for _, override := range overrides {
		override(pet)
	}

	if err := f.db.Create(pet).Error; err != nil {
		return nil, err
	}
	return pet, nil
}

// CreateApplication constructs and persists a sample adoption application
// from the given user for the given pet, with a realistic submission date
// spread over the recent past.
func (f *Factory) CreateApplication(user *models.User, pet *models.Pet, overrides ...func(*models.AdoptionApplication)) (*models.AdoptionApplication, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	submitted := time.Now().UTC().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	hasOtherPets := f.rng.Intn(3) == 0
	app := &models.AdoptionApplication{
		PetID:              pet.ID,
		UserID:             user.ID,
		Status:             models.ApplicationStatusPending,
		ApplicationMessage: gofakeit.Paragraph(1, 3, 10, " "),
		ContactPhone:       gofakeit.Phone(),
		LivingSituation:    livingSituations[f.rng.Intn(len(livingSituations))],
		HasOtherPets:       hasOtherPets,
		ApplicationDate:    submitted,
	}
	if hasOtherPets {
		details := gofakeit.Sentence(8)
		app.OtherPetsDetails = &details
	}

	for _, override := range overrides {
		override(app)
	}

	if err := f.db.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// ReviewApplication marks a seeded application reviewed by the given admin.
func (f *Factory) ReviewApplication(app *models.AdoptionApplication, admin *models.User, status models.ApplicationStatus, notes string) error {
	reviewedAt := app.ApplicationDate.Add(time.Duration(1+f.rng.Intn(72)) * time.Hour)
	updates := map[string]interface{}{
		"status":              status,
		"reviewed_at":         reviewedAt,
		"reviewed_by_user_id": admin.ID,
	}
	if notes != "" {
		updates["admin_notes"] = notes
	}
	if err := f.db.Model(app).Updates(updates).Error; err != nil {
		return err
	}
	log.Printf("reviewed seeded application %d as %s", app.ID, status)
	return nil
}
