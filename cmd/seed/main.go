// Command main runs the database seeder.
package main

import (
	"flag"
	"log"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	tasksPerUser := flag.Int("tasks", 8, "Maximum tasks per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(seed.Options{
		NumUsers:     *numUsers,
		TasksPerUser: *tasksPerUser,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete. All test users have the password: password123")
}
