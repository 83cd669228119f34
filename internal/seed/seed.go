// Package seed provides database seeding utilities for development and
// testing. All generated users share the password "password123".
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"taskhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers     int
	TasksPerUser int
	ShouldClean  bool
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed runs a full seeding pass per the options.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users with up to %d tasks each...", opts.NumUsers, opts.TasksPerUser)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	total, err := s.SeedTasks(users, opts.TasksPerUser)
	if err != nil {
		return fmt.Errorf("failed to create tasks: %w", err)
	}
	log.Printf("created %d tasks", total)

	return nil
}

// ClearAll removes all seeded rows. Tasks and sessions go first to keep
// foreign keys happy.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data...")
	for _, model := range []any{&models.Task{}, &models.Session{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates n users with unique generated emails.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		user := &models.User{
			Name:     name,
			Age:      gofakeit.Number(18, 80),
			Email:    generateEmail(name, i),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedTasks creates up to tasksPerUser tasks for every user and returns the
// total number created. Roughly a third of the tasks are completed.
func (s *Seeder) SeedTasks(users []*models.User, tasksPerUser int) (int, error) {
	if tasksPerUser <= 0 {
		return 0, nil
	}

	total := 0
	for _, user := range users {
		count := 1 + s.r.Intn(tasksPerUser)
		tasks := make([]*models.Task, 0, count)
		for i := 0; i < count; i++ {
			tasks = append(tasks, &models.Task{
				Description: generateDescription(s.r),
				Completed:   s.r.Intn(3) == 0,
				OwnerID:     user.ID,
				CreatedAt:   randomPastTime(s.r, 90),
			})
		}
		if err := s.db.Create(&tasks).Error; err != nil {
			return total, err
		}
		total += len(tasks)
	}
	return total, nil
}

var taskVerbs = []string{
	"Buy", "Clean", "Fix", "Write", "Review", "Plan", "Call", "Schedule",
	"Organize", "Return", "Renew", "Water", "Walk", "Pack", "Cancel",
}

var taskObjects = []string{
	"groceries", "the kitchen", "the leaky faucet", "the quarterly report",
	"the pull request", "next week's meals", "the dentist", "a checkup",
	"the garage", "the library books", "the car insurance", "the plants",
	"the dog", "for the trip", "the gym membership",
}

func generateDescription(r *rand.Rand) string {
	return fmt.Sprintf("%s %s", taskVerbs[r.Intn(len(taskVerbs))], taskObjects[r.Intn(len(taskObjects))])
}

// generateEmail derives a unique lowercase address from a display name. The
// index suffix keeps generated addresses collision-free within a run.
func generateEmail(name string, i int) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@%s", slug, i, gofakeit.DomainName())
}

func randomPastTime(r *rand.Rand, maxDays int) time.Time {
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}
