package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser          = "user"
	RoleSuperAdmin    = "super_admin"
	RoleOperator      = "operator"
	RoleTerminalAdmin = "terminal_admin"
)

// User statuses
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"f_name" json:"firstName" validate:"required"`
	LastName     string             `bson:"l_name" json:"lastName" validate:"required"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	Password     string             `bson:"password" json:"-"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Status       string             `bson:"status" json:"status"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AuthUser is the sanitized user shape returned by auth endpoints.
type AuthUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}
