package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"photogigs-server/models"
	"photogigs-server/services"
	"photogigs-server/storage"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a handful of photographers and upcoming events across the supported
// regions so a fresh database has a browsable feed. Safe to run more than
// once only against an empty database: it does not check for duplicates.
func main() {
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}
	storage.InitializeDB()

	ctx := context.Background()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), 10)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}

	regions := services.SupportedRegions()
	allowed := true

	names := [][2]string{
		{"Ava", "Ramirez"}, {"Noah", "Kim"}, {"Mia", "Okafor"},
		{"Liam", "Bauer"}, {"Zoe", "Tanaka"}, {"Eli", "Novak"},
	}

	var authorIDs []primitive.ObjectID
	for i, name := range names {
		region := regions[i%len(regions)]
		photographer := models.Photographer{
			FirstName:           name[0],
			LastName:            name[1],
			Email:               fmt.Sprintf("%s.%s@example.com", name[0], name[1]),
			Password:            string(hash),
			Bio:                 "Demo account seeded for local development.",
			Gear:                "canon",
			HourlyRate:          float64(60 + i*15),
			Rating:              3.5 + float64(i%3)*0.5,
			Regions:             []models.Region{region},
			PortfolioImages:     []string{},
			Availability:        []string{},
			AllowsNotifications: &allowed,
			Role:                "photographer",
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		res, insertErr := storage.Photographers.InsertOne(ctx, &photographer)
		if insertErr != nil {
			log.Fatalf("photographer insert failed: %v", insertErr)
		}
		authorIDs = append(authorIDs, res.InsertedID.(primitive.ObjectID))
	}

	titles := []string{
		"Wedding second shooter needed",
		"Product shoot for local brewery",
		"Graduation portraits downtown",
		"Engagement session at sunrise",
		"Corporate headshots, half day",
		"Street festival coverage",
	}

	for i, title := range titles {
		region := regions[(i*3)%len(regions)]
		event := models.Event{
			AuthorID:    authorIDs[i%len(authorIDs)],
			Title:       title,
			Description: "Seeded demo event. Bring your own gear.",
			Location:    region,
			Date:        now.AddDate(0, 0, 7+i*3),
			HourlyRate:  float64(50 + i*20),
			Comments:    []primitive.ObjectID{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, insertErr := storage.Events.InsertOne(ctx, &event); insertErr != nil {
			log.Fatalf("event insert failed: %v", insertErr)
		}
	}

	fmt.Printf("Seeded %d photographers and %d events\n", len(authorIDs), len(titles))
}
