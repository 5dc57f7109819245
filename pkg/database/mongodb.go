package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Connect establishes a connection to MongoDB
func Connect(mongoURI string) (*mongo.Database, error) {
	// Parse the URI to extract database name
	cs, err := connstring.ParseAndValidate(mongoURI)
	if err != nil {
		return nil, fmt.Errorf("invalid MongoDB URI: %v", err)
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB")

	dbName := cs.Database
	if dbName == "" {
		dbName = "pasahero"
	}

	db := client.Database(dbName)

	if err := createIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	return db, nil
}

// createIndexes creates necessary indexes for all collections. The unique
// indexes are the authoritative backstop for the service-layer uniqueness
// guards: the guard pre-checks are optimistic and not atomic, the index is.
func createIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	terminalIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "terminal_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "location_lat", Value: 1},
				{Key: "location_lng", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection("terminals").Indexes().CreateMany(ctx, terminalIndexes); err != nil {
		log.Printf("Failed to create terminal indexes: %v", err)
	}

	routeIndexes := []mongo.IndexModel{
		{
			// Ordered pair: (A,B) and (B,A) are distinct routes.
			Keys: bson.D{
				{Key: "start_terminal_id", Value: 1},
				{Key: "end_terminal_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection("routes").Indexes().CreateMany(ctx, routeIndexes); err != nil {
		log.Printf("Failed to create route indexes: %v", err)
	}

	// Uniqueness applies to live records only; soft-deleted buses keep
	// their identifiers without blocking reuse.
	busIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bus_number", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_deleted": false}),
		},
		{
			Keys: bson.D{{Key: "plate_number", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_deleted": false}),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection("buses").Indexes().CreateMany(ctx, busIndexes); err != nil {
		log.Printf("Failed to create bus indexes: %v", err)
	}

	driverIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "license_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection("drivers").Indexes().CreateMany(ctx, driverIndexes); err != nil {
		log.Printf("Failed to create driver indexes: %v", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		log.Printf("Failed to create user indexes: %v", err)
	}

	assignmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bus_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "driver_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "assignment_date", Value: -1}},
		},
	}
	if _, err := db.Collection("bus_assignments").Indexes().CreateMany(ctx, assignmentIndexes); err != nil {
		log.Printf("Failed to create bus assignment indexes: %v", err)
	}

	terminalLogIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "terminal_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "event_time", Value: -1}},
		},
	}
	if _, err := db.Collection("terminal_logs").Indexes().CreateMany(ctx, terminalLogIndexes); err != nil {
		log.Printf("Failed to create terminal log indexes: %v", err)
	}

	busLocationIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "bus_id", Value: 1}, {Key: "recorded_at", Value: -1}},
		},
	}
	if _, err := db.Collection("bus_locations").Indexes().CreateMany(ctx, busLocationIndexes); err != nil {
		log.Printf("Failed to create bus location indexes: %v", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}

// Disconnect closes the MongoDB connection
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %v", err)
	}

	log.Println("Disconnected from MongoDB")
	return nil
}

// Health checks the database connection health
func Health(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Client().Ping(ctx, nil)
}
