package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Terminal log statuses. confirmed and rejected are terminal.
const (
	TerminalLogStatusPending   = "pending_confirmation"
	TerminalLogStatusConfirmed = "confirmed"
	TerminalLogStatusRejected  = "rejected"
)

// Terminal log event types
const (
	TerminalLogEventArrival   = "arrival"
	TerminalLogEventDeparture = "departure"
)

type TerminalLog struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TerminalID       string             `bson:"terminal_id" json:"terminalId" validate:"required"`
	BusID            string             `bson:"bus_id" json:"busId" validate:"required"`
	EventType        string             `bson:"event_type" json:"eventType" validate:"required,oneof=arrival departure"`
	ReportedBy       string             `bson:"reported_by" json:"reportedBy"`
	ConfirmedBy      string             `bson:"confirmed_by,omitempty" json:"confirmedBy,omitempty"`
	AutoDetected     bool               `bson:"auto_detected" json:"autoDetected"`
	Status           string             `bson:"status" json:"status"`
	EventTime        time.Time          `bson:"event_time" json:"eventTime"`
	ConfirmationTime *time.Time         `bson:"confirmation_time,omitempty" json:"confirmationTime,omitempty"`
	Remarks          string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CanResolveTerminalLog reports whether a log may be resolved to the given
// status. Only pending logs can be resolved, and only to confirmed or
// rejected.
func CanResolveTerminalLog(from, to string) bool {
	if from != TerminalLogStatusPending {
		return false
	}
	return to == TerminalLogStatusConfirmed || to == TerminalLogStatusRejected
}
