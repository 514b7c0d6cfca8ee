package store

import (
	"context"
	"time"
)

// ChatMessage is one entry of a user's recent conversation history.
type ChatMessage struct {
	Message   string    `json:"message" bson:"message"`
	IsUser    bool      `json:"isUser" bson:"isUser"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// RecordStore reads a user's academic records from the document database.
//
// Accessors never return an error: any fetch failure is logged inside the
// store and surfaces to the caller as the category's empty default. Callers
// should treat an empty value as "no data", not as success or failure.
type RecordStore interface {
	// GetUserProfile returns the user's full document, or nil if the user
	// id is empty or no document exists.
	GetUserProfile(ctx context.Context, userID string) map[string]any
	GetTimetable(ctx context.Context, userID string) map[string]any
	GetExams(ctx context.Context, userID string) []any
	GetGPAData(ctx context.Context, userID string) map[string]any
	GetCourseUnits(ctx context.Context, userID string) map[string]any
	// GetChatHistory returns at most the 5 most recent messages,
	// newest first.
	GetChatHistory(ctx context.Context, userID string) []ChatMessage

	// Ping performs a minimal read to report store liveness.
	Ping(ctx context.Context) error
}
