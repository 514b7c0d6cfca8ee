package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	chatHistoryCollection = "chat_history"

	chatHistoryLimit = 5
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// userDoc fetches the user's primary document. A missing document is not an
// error; it comes back as a nil map.
func (s *MongoStore) userDoc(ctx context.Context, userID string) (bson.M, error) {
	var doc bson.M
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

func (s *MongoStore) GetUserProfile(ctx context.Context, userID string) map[string]any {
	if userID == "" {
		return nil
	}
	doc, err := s.userDoc(ctx, userID)
	if err != nil {
		log.Printf("Error fetching profile for user %s: %v", userID, err)
		return nil
	}
	if doc == nil {
		return nil
	}
	return doc
}

func (s *MongoStore) GetTimetable(ctx context.Context, userID string) map[string]any {
	return s.mapField(ctx, userID, "timetable")
}

func (s *MongoStore) GetGPAData(ctx context.Context, userID string) map[string]any {
	return s.mapField(ctx, userID, "gpa_data")
}

func (s *MongoStore) GetCourseUnits(ctx context.Context, userID string) map[string]any {
	return s.mapField(ctx, userID, "units")
}

func (s *MongoStore) GetExams(ctx context.Context, userID string) []any {
	doc, err := s.userDoc(ctx, userID)
	if err != nil {
		log.Printf("Error fetching exams for user %s: %v", userID, err)
		return []any{}
	}
	return asSlice(doc["exams"])
}

// mapField returns one named mapping field of the user document, or an empty
// map when the document or field is absent or the fetch fails.
func (s *MongoStore) mapField(ctx context.Context, userID, field string) map[string]any {
	doc, err := s.userDoc(ctx, userID)
	if err != nil {
		log.Printf("Error fetching %s for user %s: %v", field, userID, err)
		return map[string]any{}
	}
	return asMap(doc[field])
}

func (s *MongoStore) GetChatHistory(ctx context.Context, userID string) []ChatMessage {
	if userID == "" {
		return []ChatMessage{}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(chatHistoryLimit).
		SetProjection(bson.M{"message": 1, "isUser": 1, "timestamp": 1})

	cursor, err := s.db.Collection(chatHistoryCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.Printf("Error fetching chat history for user %s: %v", userID, err)
		return []ChatMessage{}
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("Error decoding chat history for user %s: %v", userID, err)
		return []ChatMessage{}
	}

	now := time.Now()
	messages := make([]ChatMessage, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, decodeChatMessage(doc, now))
	}
	return messages
}

// Ping issues a single-document read so the health endpoint exercises the
// same path the accessors use.
func (s *MongoStore) Ping(ctx context.Context) error {
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{}).Err()
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}

// decodeChatMessage converts a raw history document into a ChatMessage.
// A missing or malformed timestamp falls back to now.
func decodeChatMessage(doc bson.M, now time.Time) ChatMessage {
	message, _ := doc["message"].(string)
	isUser, _ := doc["isUser"].(bool)

	timestamp := now
	switch v := doc["timestamp"].(type) {
	case primitive.DateTime:
		timestamp = v.Time()
	case time.Time:
		timestamp = v
	}

	return ChatMessage{
		Message:   message,
		IsUser:    isUser,
		Timestamp: timestamp,
	}
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case bson.M:
		return m
	case map[string]any:
		return m
	default:
		return map[string]any{}
	}
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case bson.A:
		return s
	case []any:
		return s
	default:
		return []any{}
	}
}
