package repository

import (
	"context"
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BusRepository struct {
	collection *mongo.Collection
}

func NewBusRepository(db *mongo.Database) *BusRepository {
	return &BusRepository{
		collection: db.Collection("buses"),
	}
}

func (r *BusRepository) Create(bus *models.Bus) (*models.Bus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, bus)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Wrap(errs.KindConflict, "A bus with this bus number or plate number already exists.", err)
		}
		return nil, err
	}

	bus.ID = result.InsertedID.(primitive.ObjectID)
	return bus, nil
}

func (r *BusRepository) FindAll() ([]*models.Bus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_deleted": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buses []*models.Bus
	for cursor.Next(ctx) {
		var bus models.Bus
		if err := cursor.Decode(&bus); err != nil {
			return nil, err
		}
		buses = append(buses, &bus)
	}

	return buses, nil
}

func (r *BusRepository) FindByID(id string) (*models.Bus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid bus ID")
	}

	var bus models.Bus
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bus)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Bus not found.")
		}
		return nil, err
	}

	return &bus, nil
}

// FindByNumberOrPlate returns a bus matching either identifier, excluding
// excludeID when non-empty. Returns nil when no bus collides.
func (r *BusRepository) FindByNumberOrPlate(busNumber, plateNumber, excludeID string) (*models.Bus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"is_deleted": false,
		"$or": []bson.M{
			{"bus_number": busNumber},
			{"plate_number": plateNumber},
		},
	}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, errs.New(errs.KindValidation, "invalid bus ID")
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	var bus models.Bus
	err := r.collection.FindOne(ctx, filter).Decode(&bus)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &bus, nil
}

func (r *BusRepository) Update(id string, bus *models.Bus) (*models.Bus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid bus ID")
	}

	bus.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bus},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Bus
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Bus not found.")
		}
		return nil, err
	}

	return &updated, nil
}

// SoftDelete marks a bus deleted without removing the record. Deleted buses
// drop out of listings and uniqueness scans.
func (r *BusRepository) SoftDelete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.New(errs.KindValidation, "invalid bus ID")
	}

	now := time.Now()
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.New(errs.KindNotFound, "Bus not found.")
	}

	return nil
}
