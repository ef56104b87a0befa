package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	UserCollection      *mongo.Collection
	ProjectCollection   *mongo.Collection
	ApartmentCollection *mongo.Collection
	LeadCollection      *mongo.Collection
	TeamCollection      *mongo.Collection
	MilestoneCollection *mongo.Collection
)

func ConnectDB() (*mongo.Client, error) {
	MONGO_URI := os.Getenv("MONGOURI")
	if MONGO_URI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(MONGO_URI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	zap.L().Info("Connected to MongoDB")
	return client, nil
}

func InitCollections(client *mongo.Client) {
	dbName := os.Getenv("DB")
	UserCollection = client.Database(dbName).Collection("users")
	ProjectCollection = client.Database(dbName).Collection("projects")
	ApartmentCollection = client.Database(dbName).Collection("apartments")
	LeadCollection = client.Database(dbName).Collection("leads")
	TeamCollection = client.Database(dbName).Collection("team_members")
	MilestoneCollection = client.Database(dbName).Collection("milestones")
}
