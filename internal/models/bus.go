package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bus statuses
const (
	BusStatusActive       = "active"
	BusStatusMaintenance  = "maintenance"
	BusStatusOutOfService = "out_of_service"
)

type Bus struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusNumber   string             `bson:"bus_number" json:"busNumber" validate:"required"`
	PlateNumber string             `bson:"plate_number" json:"plateNumber" validate:"required"`
	Capacity    int                `bson:"capacity" json:"capacity" validate:"required,min=1"`
	Status      string             `bson:"status" json:"status"`
	IsDeleted   bool               `bson:"is_deleted" json:"isDeleted"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// BusStatusReport is an occupancy/delay snapshot reported for a bus.
type BusStatusReport struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusID           string             `bson:"bus_id" json:"busId" validate:"required"`
	OccupancyCount  int                `bson:"occupancy_count" json:"occupancyCount"`
	OccupancyStatus string             `bson:"occupancy_status" json:"occupancyStatus"`
	DelayMinutes    int                `bson:"delay_minutes" json:"delayMinutes"`
	IsSkippingStops bool               `bson:"is_skipping_stops" json:"isSkippingStops"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// BusLocation is a GPS ping for a bus.
type BusLocation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusID      string             `bson:"bus_id" json:"busId" validate:"required"`
	Latitude   float64            `bson:"latitude" json:"latitude"`
	Longitude  float64            `bson:"longitude" json:"longitude"`
	Speed      float64            `bson:"speed" json:"speed"`
	RecordedAt time.Time          `bson:"recorded_at" json:"recordedAt"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
