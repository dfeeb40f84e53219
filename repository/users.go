package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"quicknotes/model"
	"quicknotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("users"),
	}
}

// CreateUser inserts a new user. The unique index on email turns a
// concurrent duplicate signup into ErrEmailTaken.
func (r *UserRepo) CreateUser(user *model.User) error {
	if user.ID == "" {
		user.ID = utils.GenerateID()
	}
	user.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(context.Background(), user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(context.Background(),
		bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(userID string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(context.Background(),
		bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) UpdatePassword(userID string, hashedPassword string) error {
	result, err := r.MongoCollection.UpdateOne(context.Background(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": hashedPassword}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) SetTwoFactor(userID string, secret string, enabled bool) error {
	result, err := r.MongoCollection.UpdateOne(context.Background(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": enabled,
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
