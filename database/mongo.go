package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store is the process-wide handle to the document store. It is created once
// in main and injected into every controller, so tests and tools can build
// their own instead of reaching for package globals.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database

	Users    *mongo.Collection
	Products *mongo.Collection
	Orders   *mongo.Collection
	Carts    *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database(dbName)
	log.Println("connected to MongoDB")

	return &Store{
		Client:   client,
		DB:       db,
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
		Carts:    db.Collection("carts"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
