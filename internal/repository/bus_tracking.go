package repository

import (
	"context"
	"time"

	"pasahero-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BusTrackingRepository persists bus status reports and GPS pings.
type BusTrackingRepository struct {
	statuses  *mongo.Collection
	locations *mongo.Collection
}

func NewBusTrackingRepository(db *mongo.Database) *BusTrackingRepository {
	return &BusTrackingRepository{
		statuses:  db.Collection("bus_statuses"),
		locations: db.Collection("bus_locations"),
	}
}

func (r *BusTrackingRepository) CreateStatusReport(report *models.BusStatusReport) (*models.BusStatusReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.statuses.InsertOne(ctx, report)
	if err != nil {
		return nil, err
	}

	report.ID = result.InsertedID.(primitive.ObjectID)
	return report, nil
}

func (r *BusTrackingRepository) LatestStatusReport(busID string) (*models.BusStatusReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var report models.BusStatusReport
	err := r.statuses.FindOne(ctx, bson.M{"bus_id": busID}, opts).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &report, nil
}

func (r *BusTrackingRepository) CreateLocation(location *models.BusLocation) (*models.BusLocation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.locations.InsertOne(ctx, location)
	if err != nil {
		return nil, err
	}

	location.ID = result.InsertedID.(primitive.ObjectID)
	return location, nil
}

func (r *BusTrackingRepository) LatestLocation(busID string) (*models.BusLocation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}})

	var location models.BusLocation
	err := r.locations.FindOne(ctx, bson.M{"bus_id": busID}, opts).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &location, nil
}
