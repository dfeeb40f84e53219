package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the shared MongoDB client, initialized at startup.
var MongoClient *mongo.Client

// MongoOptions carries the connection settings resolved by the config
// package. Passed in from main to keep this package free of config reads.
type MongoOptions struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	RetryWrites     bool
}

// InitMongoClient connects to MongoDB and assigns the shared client.
func InitMongoClient(opts MongoOptions) {
	clientOptions := options.Client().
		ApplyURI(opts.URI).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMinPoolSize(opts.MinPoolSize).
		SetMaxConnIdleTime(opts.MaxConnIdleTime).
		SetRetryWrites(opts.RetryWrites)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	MongoClient = client
}
