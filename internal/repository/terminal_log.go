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

type TerminalLogRepository struct {
	collection *mongo.Collection
}

func NewTerminalLogRepository(db *mongo.Database) *TerminalLogRepository {
	return &TerminalLogRepository{
		collection: db.Collection("terminal_logs"),
	}
}

func (r *TerminalLogRepository) Create(logEntry *models.TerminalLog) (*models.TerminalLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, logEntry)
	if err != nil {
		return nil, err
	}

	logEntry.ID = result.InsertedID.(primitive.ObjectID)
	return logEntry, nil
}

func (r *TerminalLogRepository) FindAll() ([]*models.TerminalLog, error) {
	return r.find(bson.M{})
}

func (r *TerminalLogRepository) FindByTerminal(terminalID string) ([]*models.TerminalLog, error) {
	return r.find(bson.M{"terminal_id": terminalID})
}

func (r *TerminalLogRepository) FindByStatus(status string) ([]*models.TerminalLog, error) {
	return r.find(bson.M{"status": status})
}

func (r *TerminalLogRepository) find(filter bson.M) ([]*models.TerminalLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "event_time", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*models.TerminalLog
	for cursor.Next(ctx) {
		var logEntry models.TerminalLog
		if err := cursor.Decode(&logEntry); err != nil {
			return nil, err
		}
		logs = append(logs, &logEntry)
	}

	return logs, nil
}

func (r *TerminalLogRepository) FindByID(id string) (*models.TerminalLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid terminal log ID")
	}

	var logEntry models.TerminalLog
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&logEntry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Terminal log not found.")
		}
		return nil, err
	}

	return &logEntry, nil
}

func (r *TerminalLogRepository) Update(id string, logEntry *models.TerminalLog) (*models.TerminalLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid terminal log ID")
	}

	logEntry.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": logEntry},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.TerminalLog
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Terminal log not found.")
		}
		return nil, err
	}

	return &updated, nil
}

// RejectStale marks pending logs older than the cutoff as rejected. Used by
// the background sweeper.
func (r *TerminalLogRepository) RejectStale(cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"status":     models.TerminalLogStatusPending,
		"event_time": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set": bson.M{
			"status":            models.TerminalLogStatusRejected,
			"confirmed_by":      "system",
			"confirmation_time": now,
			"remarks":           "auto-rejected: unconfirmed past cutoff",
			"updated_at":        now,
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}

	return result.ModifiedCount, nil
}
