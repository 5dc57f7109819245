package services

import (
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusStore is the persistence surface the bus service needs.
// FindByNumberOrPlate returns (nil, nil) when no bus collides.
type BusStore interface {
	Create(bus *models.Bus) (*models.Bus, error)
	FindAll() ([]*models.Bus, error)
	FindByID(id string) (*models.Bus, error)
	FindByNumberOrPlate(busNumber, plateNumber, excludeID string) (*models.Bus, error)
	Update(id string, bus *models.Bus) (*models.Bus, error)
	SoftDelete(id string) error
}

type BusService struct {
	store BusStore
}

func NewBusService(store BusStore) *BusService {
	return &BusService{store: store}
}

type CreateBusRequest struct {
	BusNumber   string `json:"busNumber" validate:"required,min=1,max=20"`
	PlateNumber string `json:"plateNumber" validate:"required,min=1,max=20"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active maintenance out_of_service"`
}

type UpdateBusRequest struct {
	BusNumber   string `json:"busNumber,omitempty" validate:"omitempty,min=1,max=20"`
	PlateNumber string `json:"plateNumber,omitempty" validate:"omitempty,min=1,max=20"`
	Capacity    int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active maintenance out_of_service"`
}

func (s *BusService) GetAllBuses() ([]*models.Bus, error) {
	return s.store.FindAll()
}

func (s *BusService) GetBusByID(id string) (*models.Bus, error) {
	return s.store.FindByID(id)
}

// CreateBus persists a bus unless either identifier collides with an
// existing record. When both collide the plate number message wins.
func (s *BusService) CreateBus(req *CreateBusRequest) (*models.Bus, error) {
	if err := s.checkDuplicate(req.BusNumber, req.PlateNumber, ""); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.BusStatusActive
	}

	bus := &models.Bus{
		ID:          primitive.NewObjectID(),
		BusNumber:   req.BusNumber,
		PlateNumber: req.PlateNumber,
		Capacity:    req.Capacity,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return s.store.Create(bus)
}

// UpdateBusByID applies a partial update after re-running the duplicate
// check against the effective patch-or-existing identifiers, excluding the
// record itself.
func (s *BusService) UpdateBusByID(id string, req *UpdateBusRequest) (*models.Bus, error) {
	bus, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}

	busNumber := bus.BusNumber
	if req.BusNumber != "" {
		busNumber = req.BusNumber
	}
	plateNumber := bus.PlateNumber
	if req.PlateNumber != "" {
		plateNumber = req.PlateNumber
	}

	if err := s.checkDuplicate(busNumber, plateNumber, id); err != nil {
		return nil, err
	}

	bus.BusNumber = busNumber
	bus.PlateNumber = plateNumber
	if req.Capacity > 0 {
		bus.Capacity = req.Capacity
	}
	if req.Status != "" {
		bus.Status = req.Status
	}
	bus.UpdatedAt = time.Now()

	return s.store.Update(id, bus)
}

func (s *BusService) DeleteBusByID(id string) error {
	return s.store.SoftDelete(id)
}

func (s *BusService) checkDuplicate(busNumber, plateNumber, excludeID string) error {
	existing, err := s.store.FindByNumberOrPlate(busNumber, plateNumber, excludeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.PlateNumber == plateNumber {
		return errs.New(errs.KindConflict, "A bus with this plate number already exists.")
	}
	return errs.New(errs.KindConflict, "A bus with this bus number already exists.")
}
