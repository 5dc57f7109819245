package services

import (
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"
	"pasahero-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TerminalLogService struct {
	logRepo      *repository.TerminalLogRepository
	terminalRepo *repository.TerminalRepository
	busRepo      *repository.BusRepository
}

func NewTerminalLogService(
	logRepo *repository.TerminalLogRepository,
	terminalRepo *repository.TerminalRepository,
	busRepo *repository.BusRepository,
) *TerminalLogService {
	return &TerminalLogService{logRepo: logRepo, terminalRepo: terminalRepo, busRepo: busRepo}
}

type CreateTerminalLogRequest struct {
	TerminalID   string     `json:"terminalId" validate:"required"`
	BusID        string     `json:"busId" validate:"required"`
	EventType    string     `json:"eventType" validate:"required,oneof=arrival departure"`
	ReportedBy   string     `json:"reportedBy,omitempty"`
	AutoDetected bool       `json:"autoDetected,omitempty"`
	EventTime    *time.Time `json:"eventTime,omitempty"`
	Remarks      string     `json:"remarks,omitempty"`
}

type ResolveTerminalLogRequest struct {
	Status      string `json:"status" validate:"required,oneof=confirmed rejected"`
	ConfirmedBy string `json:"confirmedBy" validate:"required"`
	Remarks     string `json:"remarks,omitempty"`
}

func (s *TerminalLogService) GetAllLogs() ([]*models.TerminalLog, error) {
	return s.logRepo.FindAll()
}

func (s *TerminalLogService) GetLogsByTerminal(terminalID string) ([]*models.TerminalLog, error) {
	return s.logRepo.FindByTerminal(terminalID)
}

func (s *TerminalLogService) GetLogsByStatus(status string) ([]*models.TerminalLog, error) {
	return s.logRepo.FindByStatus(status)
}

func (s *TerminalLogService) GetLogByID(id string) (*models.TerminalLog, error) {
	return s.logRepo.FindByID(id)
}

// CreateLog records an arrival or departure event awaiting confirmation.
func (s *TerminalLogService) CreateLog(req *CreateTerminalLogRequest) (*models.TerminalLog, error) {
	if _, err := s.terminalRepo.FindByID(req.TerminalID); err != nil {
		return nil, err
	}
	if _, err := s.busRepo.FindByID(req.BusID); err != nil {
		return nil, err
	}

	eventTime := time.Now()
	if req.EventTime != nil {
		eventTime = *req.EventTime
	}

	logEntry := &models.TerminalLog{
		ID:           primitive.NewObjectID(),
		TerminalID:   req.TerminalID,
		BusID:        req.BusID,
		EventType:    req.EventType,
		ReportedBy:   req.ReportedBy,
		AutoDetected: req.AutoDetected,
		Status:       models.TerminalLogStatusPending,
		EventTime:    eventTime,
		Remarks:      req.Remarks,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return s.logRepo.Create(logEntry)
}

// ResolveLog confirms or rejects a pending log. Already-resolved logs cannot
// be changed again.
func (s *TerminalLogService) ResolveLog(id string, req *ResolveTerminalLogRequest) (*models.TerminalLog, error) {
	logEntry, err := s.logRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !models.CanResolveTerminalLog(logEntry.Status, req.Status) {
		return nil, errs.New(errs.KindValidation, "Only pending logs can be confirmed or rejected.")
	}

	now := time.Now()
	logEntry.Status = req.Status
	logEntry.ConfirmedBy = req.ConfirmedBy
	logEntry.ConfirmationTime = &now
	if req.Remarks != "" {
		logEntry.Remarks = req.Remarks
	}
	logEntry.UpdatedAt = now

	return s.logRepo.Update(id, logEntry)
}
