package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bus assignment statuses. Scheduled assignments move forward one step at a
// time; cancelled is reachable from any non-terminal status.
const (
	AssignmentStatusScheduled      = "scheduled"
	AssignmentStatusActive         = "active"
	AssignmentStatusArrivalPending = "arrival_pending"
	AssignmentStatusArrived        = "arrived"
	AssignmentStatusDeparted       = "departed"
	AssignmentStatusCompleted      = "completed"
	AssignmentStatusCancelled      = "cancelled"
)

type BusAssignment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BusID          string             `bson:"bus_id" json:"busId" validate:"required"`
	DriverID       string             `bson:"driver_id" json:"driverId" validate:"required"`
	RouteID        string             `bson:"route_id" json:"routeId" validate:"required"`
	TerminalID     string             `bson:"terminal_id" json:"terminalId" validate:"required"`
	AssignmentDate time.Time          `bson:"assignment_date" json:"assignmentDate"`
	Status         string             `bson:"status" json:"status"`
	ArrivalTime    *time.Time         `bson:"arrival_time,omitempty" json:"arrivalTime,omitempty"`
	DepartureTime  *time.Time         `bson:"departure_time,omitempty" json:"departureTime,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// assignmentTransitions holds the legal forward step for each non-terminal
// status. Cancellation is handled separately.
var assignmentTransitions = map[string]string{
	AssignmentStatusScheduled:      AssignmentStatusActive,
	AssignmentStatusActive:         AssignmentStatusArrivalPending,
	AssignmentStatusArrivalPending: AssignmentStatusArrived,
	AssignmentStatusArrived:        AssignmentStatusDeparted,
	AssignmentStatusDeparted:       AssignmentStatusCompleted,
}

// IsTerminalAssignmentStatus reports whether no further transitions are
// allowed out of the given status.
func IsTerminalAssignmentStatus(status string) bool {
	return status == AssignmentStatusCompleted || status == AssignmentStatusCancelled
}

// CanTransitionAssignment reports whether an assignment may move from one
// status to another. Legal moves are the single forward step in the chain,
// or cancellation from any non-terminal status.
func CanTransitionAssignment(from, to string) bool {
	if IsTerminalAssignmentStatus(from) {
		return false
	}
	if to == AssignmentStatusCancelled {
		return true
	}
	return assignmentTransitions[from] == to
}
