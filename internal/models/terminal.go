package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Terminal statuses
const (
	TerminalStatusActive    = "active"
	TerminalStatusInactive  = "inactive"
	TerminalStatusSuspended = "suspended"
)

// ProximityBoxDegrees is the half-width of the duplicate-location box around
// a terminal's coordinates (~11 meters). Two terminals may not both fall
// inside each other's box.
const ProximityBoxDegrees = 0.0001

type Terminal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TerminalName string             `bson:"terminal_name" json:"terminalName" validate:"required"`
	LocationLat  float64            `bson:"location_lat" json:"locationLat"`
	LocationLng  float64            `bson:"location_lng" json:"locationLng"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
