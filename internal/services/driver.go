package services

import (
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"
	"pasahero-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverService struct {
	driverRepo *repository.DriverRepository
}

func NewDriverService(driverRepo *repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

type CreateDriverRequest struct {
	FullName      string `json:"fullName" validate:"required,min=1,max=100"`
	LicenseNumber string `json:"licenseNumber" validate:"required,min=1,max=50"`
	ContactNumber string `json:"contactNumber,omitempty" validate:"omitempty,max=20"`
}

type UpdateDriverRequest struct {
	FullName      string `json:"fullName,omitempty" validate:"omitempty,min=1,max=100"`
	ContactNumber string `json:"contactNumber,omitempty" validate:"omitempty,max=20"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (s *DriverService) GetAllDrivers() ([]*models.Driver, error) {
	return s.driverRepo.FindAll()
}

func (s *DriverService) GetDriverByID(id string) (*models.Driver, error) {
	return s.driverRepo.FindByID(id)
}

func (s *DriverService) CreateDriver(req *CreateDriverRequest) (*models.Driver, error) {
	existing, err := s.driverRepo.FindByLicenseNumber(req.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.New(errs.KindConflict, "A driver with this license number already exists.")
	}

	driver := &models.Driver{
		ID:            primitive.NewObjectID(),
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		ContactNumber: req.ContactNumber,
		Status:        models.DriverStatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	return s.driverRepo.Create(driver)
}

func (s *DriverService) UpdateDriverByID(id string, req *UpdateDriverRequest) (*models.Driver, error) {
	driver, err := s.driverRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		driver.FullName = req.FullName
	}
	if req.ContactNumber != "" {
		driver.ContactNumber = req.ContactNumber
	}
	if req.Status != "" {
		driver.Status = req.Status
	}
	driver.UpdatedAt = time.Now()

	return s.driverRepo.Update(id, driver)
}

func (s *DriverService) DeleteDriverByID(id string) error {
	return s.driverRepo.Delete(id)
}
