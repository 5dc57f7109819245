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

type TerminalRepository struct {
	collection *mongo.Collection
}

func NewTerminalRepository(db *mongo.Database) *TerminalRepository {
	return &TerminalRepository{
		collection: db.Collection("terminals"),
	}
}

func (r *TerminalRepository) Create(terminal *models.Terminal) (*models.Terminal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, terminal)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Wrap(errs.KindConflict, "Terminal name \""+terminal.TerminalName+"\" already exists.", err)
		}
		return nil, err
	}

	terminal.ID = result.InsertedID.(primitive.ObjectID)
	return terminal, nil
}

func (r *TerminalRepository) FindAll() ([]*models.Terminal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var terminals []*models.Terminal
	for cursor.Next(ctx) {
		var terminal models.Terminal
		if err := cursor.Decode(&terminal); err != nil {
			return nil, err
		}
		terminals = append(terminals, &terminal)
	}

	return terminals, nil
}

func (r *TerminalRepository) FindByID(id string) (*models.Terminal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid terminal ID")
	}

	var terminal models.Terminal
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&terminal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Terminal not found.")
		}
		return nil, err
	}

	return &terminal, nil
}

func (r *TerminalRepository) FindByName(name string) (*models.Terminal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var terminal models.Terminal
	err := r.collection.FindOne(ctx, bson.M{"terminal_name": name}).Decode(&terminal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &terminal, nil
}

// FindNear returns a terminal whose coordinates fall inside the
// duplicate-location box around (lat,lng), excluding excludeID when
// non-empty. Returns nil when no terminal is near.
func (r *TerminalRepository) FindNear(lat, lng float64, excludeID string) (*models.Terminal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"location_lat": bson.M{
			"$gte": lat - models.ProximityBoxDegrees,
			"$lte": lat + models.ProximityBoxDegrees,
		},
		"location_lng": bson.M{
			"$gte": lng - models.ProximityBoxDegrees,
			"$lte": lng + models.ProximityBoxDegrees,
		},
	}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, errs.New(errs.KindValidation, "invalid terminal ID")
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	var terminal models.Terminal
	err := r.collection.FindOne(ctx, filter).Decode(&terminal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &terminal, nil
}

func (r *TerminalRepository) Update(id string, terminal *models.Terminal) (*models.Terminal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid terminal ID")
	}

	terminal.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": terminal},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Terminal
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Terminal not found.")
		}
		return nil, err
	}

	return &updated, nil
}
