package services

import (
	"time"

	"pasahero-backend/internal/models"
	"pasahero-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

type CreateNotificationRequest struct {
	BusID            string `json:"busId,omitempty"`
	RouteID          string `json:"routeId,omitempty"`
	SenderID         string `json:"senderId" validate:"required"`
	Title            string `json:"title" validate:"required,min=1,max=200"`
	Message          string `json:"message" validate:"required,min=1,max=2000"`
	NotificationType string `json:"notificationType,omitempty" validate:"omitempty,oneof=info alert delay service_change"`
}

func (s *NotificationService) GetAllNotifications() ([]*models.Notification, error) {
	return s.notificationRepo.FindAll()
}

func (s *NotificationService) CreateNotification(req *CreateNotificationRequest) (*models.Notification, error) {
	notification := &models.Notification{
		ID:               primitive.NewObjectID(),
		BusID:            req.BusID,
		RouteID:          req.RouteID,
		SenderID:         req.SenderID,
		Title:            req.Title,
		Message:          req.Message,
		NotificationType: req.NotificationType,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	return s.notificationRepo.Create(notification)
}
