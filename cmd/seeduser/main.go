// cmd/seeduser/main.go — creates/updates the demo admin account.
// Usage: go run ./cmd/seeduser
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017/?replicaSet=rs0"
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "jewelery"
	}
	username := "admin"
	password := "1234"
	name := "Admin Demo"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	_, err = client.Database(database).Collection("users").UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$set": bson.M{
				"name":         name,
				"passwordHash": string(hash),
				"role":         "admin",
				"active":       true,
			},
			"$setOnInsert": bson.M{"createdAt": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("upsert error: %v", err)
	}
	fmt.Printf("user %q created/updated with password %q\n", username, password)
}
