package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsepoll/internal/model"
)

// Seeds a demo survey with a month of synthetic responses so the analytics
// dashboard has something to show. Fixed RNG seed keeps reruns comparable.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "pulsepoll"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	ownerID := "owner_demo0001"
	survey := model.SurveyDefinition{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Title:      "Product Satisfaction Survey",
		Visibility: "unlisted",
		Questions: []model.QuestionDefinition{
			{
				ID:        "q1",
				Text:      "How satisfied are you with the product overall?",
				Type:      model.QuestionTypeRating,
				Required:  true,
				RatingMin: 1,
				RatingMax: 5,
			},
			{
				ID:        "q2",
				Text:      "How likely are you to recommend us to a friend?",
				Type:      model.QuestionTypeRating,
				Required:  true,
				RatingMin: 1,
				RatingMax: 5,
			},
			{
				ID:       "q3",
				Text:     "Which plan are you on?",
				Type:     model.QuestionTypeSingleChoice,
				Required: false,
				Options:  []string{"Free", "Starter", "Business"},
			},
			{
				ID:       "q4",
				Text:     "What would you improve first?",
				Type:     model.QuestionTypeLongText,
				Required: false,
			},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := db.Collection("surveys").InsertOne(ctx, survey); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	devices := []model.DeviceType{model.DeviceMobile, model.DeviceDesktop, model.DeviceTablet}
	browsers := []string{"Chrome", "Firefox", "Safari", "Edge"}
	ageGroups := []string{"18-24", "25-34", "35-44", "45+"}
	plans := []string{"Free", "Starter", "Business"}
	improvements := []string{
		"Faster loading times",
		"Better mobile layout",
		"More export options",
		"Clearer pricing",
	}

	now := time.Now().UTC()
	inserted := 0
	for day := 28; day >= 0; day-- {
		perDay := 1 + rng.Intn(4)
		for i := 0; i < perDay; i++ {
			submittedAt := now.AddDate(0, 0, -day).
				Add(-time.Duration(rng.Intn(12)) * time.Hour)

			satisfaction := 2 + rng.Intn(4) // 2-5
			recommend := satisfaction       // correlated on purpose
			if rng.Intn(4) == 0 {
				recommend = 1 + rng.Intn(5)
			}

			answers := map[string]any{
				"q1": satisfaction,
				"q2": recommend,
			}
			if rng.Intn(10) < 8 {
				answers["q3"] = plans[rng.Intn(len(plans))]
			}
			if rng.Intn(10) < 5 {
				answers["q4"] = improvements[rng.Intn(len(improvements))]
			}

			record := model.ResponseRecord{
				ID:          uuid.New().String(),
				SurveyID:    survey.ID,
				Answers:     answers,
				SubmittedAt: submittedAt,
				DurationSec: 60 + float64(rng.Intn(240)),
				Device:      devices[rng.Intn(len(devices))],
				Browser:     browsers[rng.Intn(len(browsers))],
				Demographics: map[string]string{
					"age_group": ageGroups[rng.Intn(len(ageGroups))],
				},
				QualityStatus: model.QualityAccepted,
			}

			if _, err := db.Collection("responses").InsertOne(ctx, record); err != nil {
				log.Fatalf("Failed to insert response: %v", err)
			}
			inserted++
		}
	}

	fmt.Printf("Seeded survey %q (%s) with %d responses for owner %s\n",
		survey.Title, survey.ID, inserted, ownerID)
}
