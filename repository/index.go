package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notesCollection := db.Collection("notes")
	usersCollection := db.Collection("users")

	noteIndexes := []mongo.IndexModel{
		// Basic user-date index
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_notes_date").
				SetUnique(false),
		},
		// Archive listing index
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_archived", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_archived_notes"),
		},
		// Tags index
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "tags", Value: 1},
			},
			Options: options.Index().
				SetName("user_tags"),
		},
		// Share tokens must be globally unique across all notes. Sparse so
		// that the many notes without a token don't collide on null. This
		// index, not the application-level pre-check, is the actual
		// uniqueness guarantee.
		{
			Keys: bson.D{{Key: "share_token", Value: 1}},
			Options: options.Index().
				SetName("share_token_unique").
				SetUnique(true).
				SetSparse(true),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	_, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes)
	if err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	_, err = usersCollection.Indexes().CreateMany(ctx, userIndexes)
	if err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
