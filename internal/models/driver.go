package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver statuses
const (
	DriverStatusActive   = "active"
	DriverStatusInactive = "inactive"
)

type Driver struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"full_name" json:"fullName" validate:"required"`
	LicenseNumber string             `bson:"license_number" json:"licenseNumber" validate:"required"`
	ContactNumber string             `bson:"contact_number" json:"contactNumber"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
