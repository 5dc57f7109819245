package services

import (
	"fmt"
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"
	"pasahero-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	busRepo        *repository.BusRepository
	driverRepo     *repository.DriverRepository
	routeRepo      *repository.RouteRepository
	terminalRepo   *repository.TerminalRepository
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	busRepo *repository.BusRepository,
	driverRepo *repository.DriverRepository,
	routeRepo *repository.RouteRepository,
	terminalRepo *repository.TerminalRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		busRepo:        busRepo,
		driverRepo:     driverRepo,
		routeRepo:      routeRepo,
		terminalRepo:   terminalRepo,
	}
}

type CreateAssignmentRequest struct {
	BusID          string     `json:"busId" validate:"required"`
	DriverID       string     `json:"driverId" validate:"required"`
	RouteID        string     `json:"routeId" validate:"required"`
	TerminalID     string     `json:"terminalId" validate:"required"`
	AssignmentDate *time.Time `json:"assignmentDate,omitempty"`
}

type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled active arrival_pending arrived departed completed cancelled"`
}

func (s *AssignmentService) GetAllAssignments() ([]*models.BusAssignment, error) {
	return s.assignmentRepo.FindAll()
}

func (s *AssignmentService) GetAssignmentByID(id string) (*models.BusAssignment, error) {
	return s.assignmentRepo.FindByID(id)
}

func (s *AssignmentService) GetAssignmentsByBus(busID string) ([]*models.BusAssignment, error) {
	return s.assignmentRepo.FindByBus(busID)
}

func (s *AssignmentService) CreateAssignment(req *CreateAssignmentRequest) (*models.BusAssignment, error) {
	if _, err := s.busRepo.FindByID(req.BusID); err != nil {
		return nil, err
	}
	if _, err := s.driverRepo.FindByID(req.DriverID); err != nil {
		return nil, err
	}
	if _, err := s.routeRepo.FindByID(req.RouteID); err != nil {
		return nil, err
	}
	if _, err := s.terminalRepo.FindByID(req.TerminalID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.AssignmentDate != nil {
		date = *req.AssignmentDate
	}

	assignment := &models.BusAssignment{
		ID:             primitive.NewObjectID(),
		BusID:          req.BusID,
		DriverID:       req.DriverID,
		RouteID:        req.RouteID,
		TerminalID:     req.TerminalID,
		AssignmentDate: date,
		Status:         models.AssignmentStatusScheduled,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	return s.assignmentRepo.Create(assignment)
}

// UpdateAssignmentStatus advances an assignment through its lifecycle. Only
// the single forward step is allowed, plus cancellation from any non-terminal
// status. Arrival and departure moves stamp the matching timestamp.
func (s *AssignmentService) UpdateAssignmentStatus(id string, req *UpdateAssignmentStatusRequest) (*models.BusAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionAssignment(assignment.Status, req.Status) {
		return nil, errs.New(errs.KindValidation,
			fmt.Sprintf("Cannot change assignment status from %q to %q.", assignment.Status, req.Status))
	}

	now := time.Now()
	assignment.Status = req.Status
	switch req.Status {
	case models.AssignmentStatusArrived:
		assignment.ArrivalTime = &now
	case models.AssignmentStatusDeparted:
		assignment.DepartureTime = &now
	}
	assignment.UpdatedAt = now

	return s.assignmentRepo.Update(id, assignment)
}
