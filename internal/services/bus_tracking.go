package services

import (
	"time"

	"pasahero-backend/internal/models"
	"pasahero-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BusTrackingService struct {
	trackingRepo *repository.BusTrackingRepository
	busRepo      *repository.BusRepository
}

func NewBusTrackingService(trackingRepo *repository.BusTrackingRepository, busRepo *repository.BusRepository) *BusTrackingService {
	return &BusTrackingService{trackingRepo: trackingRepo, busRepo: busRepo}
}

type ReportBusStatusRequest struct {
	BusID           string `json:"busId" validate:"required"`
	OccupancyCount  int    `json:"occupancyCount" validate:"min=0"`
	OccupancyStatus string `json:"occupancyStatus,omitempty" validate:"omitempty,oneof=empty light moderate full"`
	DelayMinutes    int    `json:"delayMinutes" validate:"min=0"`
	IsSkippingStops bool   `json:"isSkippingStops"`
}

type ReportBusLocationRequest struct {
	BusID     string  `json:"busId" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Speed     float64 `json:"speed" validate:"min=0"`
}

func (s *BusTrackingService) ReportStatus(req *ReportBusStatusRequest) (*models.BusStatusReport, error) {
	if _, err := s.busRepo.FindByID(req.BusID); err != nil {
		return nil, err
	}

	report := &models.BusStatusReport{
		ID:              primitive.NewObjectID(),
		BusID:           req.BusID,
		OccupancyCount:  req.OccupancyCount,
		OccupancyStatus: req.OccupancyStatus,
		DelayMinutes:    req.DelayMinutes,
		IsSkippingStops: req.IsSkippingStops,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	return s.trackingRepo.CreateStatusReport(report)
}

func (s *BusTrackingService) GetLatestStatus(busID string) (*models.BusStatusReport, error) {
	if _, err := s.busRepo.FindByID(busID); err != nil {
		return nil, err
	}
	return s.trackingRepo.LatestStatusReport(busID)
}

func (s *BusTrackingService) ReportLocation(req *ReportBusLocationRequest) (*models.BusLocation, error) {
	if _, err := s.busRepo.FindByID(req.BusID); err != nil {
		return nil, err
	}

	location := &models.BusLocation{
		ID:         primitive.NewObjectID(),
		BusID:      req.BusID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Speed:      req.Speed,
		RecordedAt: time.Now(),
		CreatedAt:  time.Now(),
	}

	return s.trackingRepo.CreateLocation(location)
}

func (s *BusTrackingService) GetLatestLocation(busID string) (*models.BusLocation, error) {
	if _, err := s.busRepo.FindByID(busID); err != nil {
		return nil, err
	}
	return s.trackingRepo.LatestLocation(busID)
}
