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

type DriverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) *DriverRepository {
	return &DriverRepository{
		collection: db.Collection("drivers"),
	}
}

func (r *DriverRepository) Create(driver *models.Driver) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, driver)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Wrap(errs.KindConflict, "A driver with this license number already exists.", err)
		}
		return nil, err
	}

	driver.ID = result.InsertedID.(primitive.ObjectID)
	return driver, nil
}

func (r *DriverRepository) FindAll() ([]*models.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drivers []*models.Driver
	for cursor.Next(ctx) {
		var driver models.Driver
		if err := cursor.Decode(&driver); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}

	return drivers, nil
}

func (r *DriverRepository) FindByID(id string) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid driver ID")
	}

	var driver models.Driver
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Driver not found.")
		}
		return nil, err
	}

	return &driver, nil
}

func (r *DriverRepository) FindByLicenseNumber(licenseNumber string) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"license_number": licenseNumber}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &driver, nil
}

func (r *DriverRepository) Update(id string, driver *models.Driver) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.New(errs.KindValidation, "invalid driver ID")
	}

	driver.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": driver},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Driver
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.New(errs.KindNotFound, "Driver not found.")
		}
		return nil, err
	}

	return &updated, nil
}

func (r *DriverRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.New(errs.KindValidation, "invalid driver ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return errs.New(errs.KindNotFound, "Driver not found.")
	}

	return nil
}
