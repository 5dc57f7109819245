package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusID            string             `bson:"bus_id,omitempty" json:"busId,omitempty"`
	RouteID          string             `bson:"route_id,omitempty" json:"routeId,omitempty"`
	SenderID         string             `bson:"sender_id" json:"senderId" validate:"required"`
	Title            string             `bson:"title" json:"title" validate:"required"`
	Message          string             `bson:"message" json:"message" validate:"required"`
	NotificationType string             `bson:"notification_type,omitempty" json:"notificationType,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
