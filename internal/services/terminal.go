package services

import (
	"fmt"
	"log"
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"
	"pasahero-backend/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TerminalStore is the persistence surface the terminal service needs.
// Lookup methods return (nil, nil) when nothing matches so guards can treat
// "found" as the collision signal.
type TerminalStore interface {
	Create(terminal *models.Terminal) (*models.Terminal, error)
	FindAll() ([]*models.Terminal, error)
	FindByID(id string) (*models.Terminal, error)
	FindByName(name string) (*models.Terminal, error)
	FindNear(lat, lng float64, excludeID string) (*models.Terminal, error)
	Update(id string, terminal *models.Terminal) (*models.Terminal, error)
}

type TerminalService struct {
	store TerminalStore
	cache *cache.Manager
}

func NewTerminalService(store TerminalStore) *TerminalService {
	return &TerminalService{store: store}
}

// SetCacheManager enables list caching. The service works without one.
func (s *TerminalService) SetCacheManager(manager *cache.Manager) {
	s.cache = manager
}

const terminalListCacheKey = "all_terminals"

type CreateTerminalRequest struct {
	TerminalName string   `json:"terminalName" validate:"required,min=1,max=100"`
	LocationLat  *float64 `json:"locationLat" validate:"required,min=-90,max=90"`
	LocationLng  *float64 `json:"locationLng" validate:"required,min=-180,max=180"`
	Status       string   `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

type UpdateTerminalRequest struct {
	TerminalName string   `json:"terminalName,omitempty" validate:"omitempty,min=1,max=100"`
	LocationLat  *float64 `json:"locationLat,omitempty" validate:"omitempty,min=-90,max=90"`
	LocationLng  *float64 `json:"locationLng,omitempty" validate:"omitempty,min=-180,max=180"`
	Status       string   `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

func (s *TerminalService) GetAllTerminals() ([]*models.Terminal, error) {
	if s.cache != nil {
		var cached []*models.Terminal
		hit, err := s.cache.Get(terminalListCacheKey, &cached)
		if err != nil {
			log.Printf("Cache error for GetAllTerminals: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	terminals, err := s.store.FindAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(terminalListCacheKey, terminals, cache.ListTTL); err != nil {
			log.Printf("Failed to cache terminal list: %v", err)
		}
	}

	return terminals, nil
}

func (s *TerminalService) GetTerminalByID(id string) (*models.Terminal, error) {
	return s.store.FindByID(id)
}

// CreateTerminal persists a terminal after the name and proximity guards
// pass. Name comparison is exact-match case-sensitive; proximity is a
// ±0.0001 degree box around the candidate coordinates.
func (s *TerminalService) CreateTerminal(req *CreateTerminalRequest) (*models.Terminal, error) {
	existing, err := s.store.FindByName(req.TerminalName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.New(errs.KindConflict, fmt.Sprintf("Terminal name %q already exists.", req.TerminalName))
	}

	near, err := s.store.FindNear(*req.LocationLat, *req.LocationLng, "")
	if err != nil {
		return nil, err
	}
	if near != nil {
		return nil, errs.New(errs.KindConflict, "A terminal is already registered at or very near this location.")
	}

	status := req.Status
	if status == "" {
		status = models.TerminalStatusActive
	}

	terminal := &models.Terminal{
		ID:           primitive.NewObjectID(),
		TerminalName: req.TerminalName,
		LocationLat:  *req.LocationLat,
		LocationLng:  *req.LocationLng,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	created, err := s.store.Create(terminal)
	if err != nil {
		return nil, err
	}

	s.invalidateList()
	return created, nil
}

// UpdateTerminalByID applies a partial update after re-running the guards.
// The name guard only runs when the name actually changes; the proximity
// guard runs when either coordinate changes, against the effective
// patch-or-existing position, excluding the record itself.
func (s *TerminalService) UpdateTerminalByID(id string, req *UpdateTerminalRequest) (*models.Terminal, error) {
	terminal, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.TerminalName != "" && req.TerminalName != terminal.TerminalName {
		existing, err := s.store.FindByName(req.TerminalName)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errs.New(errs.KindConflict, fmt.Sprintf("Terminal name %q already exists.", req.TerminalName))
		}
		terminal.TerminalName = req.TerminalName
	}

	if req.LocationLat != nil || req.LocationLng != nil {
		lat := terminal.LocationLat
		lng := terminal.LocationLng
		if req.LocationLat != nil {
			lat = *req.LocationLat
		}
		if req.LocationLng != nil {
			lng = *req.LocationLng
		}

		if lat != terminal.LocationLat || lng != terminal.LocationLng {
			near, err := s.store.FindNear(lat, lng, id)
			if err != nil {
				return nil, err
			}
			if near != nil {
				return nil, errs.New(errs.KindConflict, "A terminal is already registered at or very near this location.")
			}
		}

		terminal.LocationLat = lat
		terminal.LocationLng = lng
	}

	if req.Status != "" {
		terminal.Status = req.Status
	}

	terminal.UpdatedAt = time.Now()

	updated, err := s.store.Update(id, terminal)
	if err != nil {
		return nil, err
	}

	s.invalidateList()
	return updated, nil
}

func (s *TerminalService) invalidateList() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(terminalListCacheKey); err != nil {
		log.Printf("Failed to invalidate terminal list cache: %v", err)
	}
}
