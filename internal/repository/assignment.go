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

type AssignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{
		collection: db.Collection("bus_assignments"),
	}
}

func (r *AssignmentRepository) Create(assignment *models.BusAssignment) (*models.BusAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return nil, err
	}

	assignment.ID = result.InsertedID.(primitive.ObjectID)
	return assignment, nil
}

func (r *AssignmentRepository) FindAll() ([]*models.BusAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "assignment_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*models.BusAssignment
	for cursor.Next(ctx) {
		var assignment models.BusAssignment
		if err := cursor.Decode(&assignment); err != nil {
			return nil, err
		}
		assignments = append(assignments, &assignment)
	}

	return assignments, nil
}

func (r *AssignmentRepository) FindByID(id string) (*models.BusAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid assignment ID")
	}

	var assignment models.BusAssignment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Bus assignment not found.")
		}
		return nil, err
	}

	return &assignment, nil
}

func (r *AssignmentRepository) FindByBus(busID string) ([]*models.BusAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "assignment_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"bus_id": busID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*models.BusAssignment
	for cursor.Next(ctx) {
		var assignment models.BusAssignment
		if err := cursor.Decode(&assignment); err != nil {
			return nil, err
		}
		assignments = append(assignments, &assignment)
	}

	return assignments, nil
}

func (r *AssignmentRepository) Update(id string, assignment *models.BusAssignment) (*models.BusAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid assignment ID")
	}

	assignment.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": assignment},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.BusAssignment
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Bus assignment not found.")
		}
		return nil, err
	}

	return &updated, nil
}
