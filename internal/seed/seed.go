package seed

import (
	"fmt"
	"log"

	"pawhaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumLocations int
	NumPets      int
	ShouldClean  bool
	SkipBcrypt   bool
	MaxDays      int
}

// Seed populates the database with demo adopters, shelters, pets and
// applications in a mix of lifecycle states.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d users, %d locations, %d pets...", opts.NumUsers, opts.NumLocations, opts.NumPets)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	admin, err := f.CreateUser(func(u *models.User) {
		u.Email = "admin@pawhaven.dev"
		u.DisplayName = "PawHaven Admin"
		u.IsAdmin = true
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d adopters created (plus admin %s)", len(users), admin.Email)

	locations := make([]*models.Location, 0, opts.NumLocations)
	for i := 0; i < opts.NumLocations; i++ {
		location, err := f.CreateLocation()
		if err != nil {
			return fmt.Errorf("failed to create location: %w", err)
		}
		locations = append(locations, location)
	}
	log.Printf("✓ %d shelters created", len(locations))

	pets := make([]*models.Pet, 0, opts.NumPets)
	for i := 0; i < opts.NumPets; i++ {
		location := locations[f.rng.Intn(len(locations))]
		pet, err := f.CreatePet(location, func(p *models.Pet) {
			// leave roughly a fifth of listings awaiting approval
			if f.rng.Intn(5) == 0 {
				p.Status = models.PetStatusPending
			}
		})
		if err != nil {
			return fmt.Errorf("failed to create pet: %w", err)
		}
		pets = append(pets, pet)
	}
	log.Printf("✓ %d pets created", len(pets))

	applications := 0
	for _, user := range users {
		// each adopter applies for up to three distinct pets
		count := f.rng.Intn(4)
		seen := map[uint]bool{}
		for i := 0; i < count; i++ {
			pet := pets[f.rng.Intn(len(pets))]
			if pet.Status != models.PetStatusApproved || seen[pet.ID] {
				continue
			}
			seen[pet.ID] = true

			app, err := f.CreateApplication(user, pet)
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}
			applications++

			switch f.rng.Intn(3) {
			case 0:
				if err := f.ReviewApplication(app, admin, models.ApplicationStatusApproved, ""); err != nil {
					return fmt.Errorf("failed to review application: %w", err)
				}
			case 1:
				if err := f.ReviewApplication(app, admin, models.ApplicationStatusRejected, gofakeit.Sentence(10)); err != nil {
					return fmt.Errorf("failed to review application: %w", err)
				}
			}
		}
	}
	log.Printf("✓ %d applications created", applications)
	log.Println("🌱 Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// delete children before parents to satisfy foreign keys
	tables := []string{"adoption_applications", "pets", "locations", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
