package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"quicknotes/model"
	"quicknotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupUserRepo(t *testing.T) *UserRepo {
	t.Helper()

	uri := utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	coll := client.Database("quicknotes_test").Collection("users_" + utils.GenerateID())

	// The duplicate-signup behavior depends on the unique email index.
	_, err = coll.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("Failed to create email index: %v", err)
	}

	t.Cleanup(func() {
		coll.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	return &UserRepo{MongoCollection: coll}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := setupUserRepo(t)

	user := &model.User{Email: "a@example.com", Password: "hash"}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == "" {
		t.Error("Expected user ID to be assigned")
	}

	dup := &model.User{Email: "a@example.com", Password: "hash"}
	if err := repo.CreateUser(dup); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestFindUser(t *testing.T) {
	repo := setupUserRepo(t)

	user := &model.User{Email: "b@example.com", Password: "hash"}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	found, err := repo.FindByEmail("b@example.com")
	if err != nil {
		t.Fatalf("Failed to find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("Found the wrong user: %s", found.ID)
	}

	if _, err := repo.FindByEmail("nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdatePasswordMissingUser(t *testing.T) {
	repo := setupUserRepo(t)

	if err := repo.UpdatePassword("missing", "newhash"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestSetTwoFactor(t *testing.T) {
	repo := setupUserRepo(t)

	user := &model.User{Email: "c@example.com", Password: "hash"}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	if err := repo.SetTwoFactor(user.ID, "SECRET", true); err != nil {
		t.Fatalf("Failed to set 2FA: %v", err)
	}

	stored, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("Failed to fetch user: %v", err)
	}
	if stored.TwoFactorSecret != "SECRET" || !stored.TwoFactorEnabled {
		t.Errorf("Unexpected 2FA state: %+v", stored)
	}
}
