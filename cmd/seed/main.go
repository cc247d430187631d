// Command main runs the database seeder for PawHaven.
package main

import (
	"flag"
	"log"

	"pawhaven/internal/config"
	"pawhaven/internal/database"
	"pawhaven/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 40, "Number of adopter accounts to create")
	numLocations := flag.Int("locations", 5, "Number of shelters to create")
	numPets := flag.Int("pets", 80, "Number of pet listings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding (dev only)")
	maxDays := flag.Int("max-days", 60, "Spread application dates over this many days")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d locations, %d pets, clean=%v\n", *numUsers, *numLocations, *numPets, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		NumLocations: *numLocations,
		NumPets:      *numPets,
		ShouldClean:  *shouldClean,
		SkipBcrypt:   *skipBcrypt,
		MaxDays:      *maxDays,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
