package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Route statuses
const (
	RouteStatusActive    = "active"
	RouteStatusInactive  = "inactive"
	RouteStatusSuspended = "suspended"
)

type Route struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RouteName         string             `bson:"route_name" json:"routeName" validate:"required"`
	StartTerminalID   string             `bson:"start_terminal_id" json:"startTerminalId" validate:"required"`
	EndTerminalID     string             `bson:"end_terminal_id" json:"endTerminalId" validate:"required"`
	EstimatedDuration int                `bson:"estimated_duration" json:"estimatedDuration"` // minutes
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PopulatedRoute is a route with its terminal references resolved to full
// records, mirroring what list/detail responses return.
type PopulatedRoute struct {
	Route
	StartTerminal *Terminal `json:"startTerminal,omitempty"`
	EndTerminal   *Terminal `json:"endTerminal,omitempty"`
}
