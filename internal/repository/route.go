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

type RouteRepository struct {
	collection *mongo.Collection
}

func NewRouteRepository(db *mongo.Database) *RouteRepository {
	return &RouteRepository{
		collection: db.Collection("routes"),
	}
}

func (r *RouteRepository) Create(route *models.Route) (*models.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, route)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Wrap(errs.KindConflict, "A route with these terminals already exists.", err)
		}
		return nil, err
	}

	route.ID = result.InsertedID.(primitive.ObjectID)
	return route, nil
}

func (r *RouteRepository) FindAll() ([]*models.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routes []*models.Route
	for cursor.Next(ctx) {
		var route models.Route
		if err := cursor.Decode(&route); err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}

	return routes, nil
}

func (r *RouteRepository) FindByID(id string) (*models.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid route ID")
	}

	var route models.Route
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Route not found.")
		}
		return nil, err
	}

	return &route, nil
}

// FindByEndpoints looks up a route with the exact ordered terminal pair.
// Returns nil when none exists.
func (r *RouteRepository) FindByEndpoints(startTerminalID, endTerminalID string) (*models.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"start_terminal_id": startTerminalID,
		"end_terminal_id":   endTerminalID,
	}

	var route models.Route
	err := r.collection.FindOne(ctx, filter).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &route, nil
}
