// Command seed loads a demo student into the record store and prints a
// development bearer token for exercising the API by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/remi-assist/remi-backend/internal/auth"
	"github.com/remi-assist/remi-backend/internal/config"
)

func main() {
	config.LoadConfig()

	userID := flag.String("user", "demo-student", "user id to seed")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(config.AppConfig.MongoDB)

	userDoc := bson.M{
		"nickname":         "Sam",
		"course":           "Computer Science",
		"current_semester": 2,
		"total_semesters":  8,
		"timetable": bson.M{
			"monday":    bson.A{"CS101 09:00", "MA102 14:00"},
			"wednesday": bson.A{"CS102 11:00"},
		},
		"exams": bson.A{
			bson.M{"unit": "CS101", "date": "2026-09-15", "venue": "Hall A"},
			bson.M{"unit": "MA102", "date": "2026-09-18", "venue": "Hall C"},
		},
		"gpa_data": bson.M{
			"cgpa": 3.4,
			"semesters": bson.A{
				bson.M{"semester": 1, "gpa": 3.4},
			},
		},
		"units": bson.M{
			"CS101": "Introduction to Programming",
			"CS102": "Discrete Mathematics",
			"MA102": "Calculus I",
		},
	}

	_, err = db.Collection("users").ReplaceOne(
		ctx,
		bson.M{"_id": *userID},
		userDoc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("Failed to seed user document: %v", err)
	}

	history := db.Collection("chat_history")
	if _, err := history.DeleteMany(ctx, bson.M{"user_id": *userID}); err != nil {
		log.Fatalf("Failed to clear chat history: %v", err)
	}

	now := time.Now()
	messages := []any{
		bson.M{"user_id": *userID, "message": "Hi REMI, what's on my timetable today?", "isUser": true, "timestamp": now.Add(-10 * time.Minute)},
		bson.M{"user_id": *userID, "message": "You have CS101 at 09:00 and MA102 at 14:00.", "isUser": false, "timestamp": now.Add(-9 * time.Minute)},
		bson.M{"user_id": *userID, "message": "When is my next exam?", "isUser": true, "timestamp": now.Add(-5 * time.Minute)},
	}
	if _, err := history.InsertMany(ctx, messages); err != nil {
		log.Fatalf("Failed to seed chat history: %v", err)
	}

	token, err := auth.NewVerifier(config.AppConfig.JWTSecret).GenerateToken(*userID)
	if err != nil {
		log.Fatalf("Failed to generate dev token: %v", err)
	}

	log.Printf("Seeded user %q with timetable, exams, gpa_data, units, and %d chat messages", *userID, len(messages))
	fmt.Printf("Authorization: Bearer %s\n", token)
}
