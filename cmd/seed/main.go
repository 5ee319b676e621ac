package main

import (
	"log"
	"os"
	"time"

	"github.com/alertdeck-dev/alertdeck/db"
	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a development database with two teams, a handful of users and one
// team-targeted alert. Every user gets the same password (SEED_PASSWORD,
// default "changeme123") so any of them can log in locally.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	alpha := models.Team{Name: "Team Alpha"}
	beta := models.Team{Name: "Team Beta"}

	for _, team := range []*models.Team{&alpha, &beta} {
		if err := db.DB.Create(team).Error; err != nil {
			log.Fatalf("Failed to seed team %s: %v", team.Name, err)
		}
	}

	users := []models.User{
		{Email: "alice@example.com", FullName: "Alice Smith", TeamID: &alpha.ID},
		{Email: "bob@example.com", FullName: "Bob Brown", TeamID: &alpha.ID},
		{Email: "carol@example.com", FullName: "Carol Jones", TeamID: &beta.ID},
		{Email: "dave@example.com", FullName: "Dave Lee", TeamID: &beta.ID},
		{Email: "eve@example.com", FullName: "Eve Miller", TeamID: &alpha.ID},
	}

	for i := range users {
		users[i].PasswordHash = string(passwordHash)
		users[i].IsActive = true

		if err := db.DB.Create(&users[i]).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", users[i].Email, err)
		}
	}

	alert := models.Alert{
		Title:           "Server Downtime",
		MessageBody:     "The server will be down at midnight for maintenance.",
		Severity:        types.SeverityWarning,
		StartTime:       time.Now().UTC(),
		ReminderEnabled: true,
		CreatedByID:     users[0].ID,
		TargetTeams:     []models.Team{alpha},
	}

	if err := db.DB.Create(&alert).Error; err != nil {
		log.Fatalf("Failed to seed alert: %v", err)
	}

	log.Printf("Seeded 2 teams, %d users and 1 alert", len(users))
}
