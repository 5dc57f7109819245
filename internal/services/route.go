package services

import (
	"log"
	"time"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"
	"pasahero-backend/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RouteStore is the persistence surface the route service needs.
// FindByEndpoints returns (nil, nil) when no route has the ordered pair.
type RouteStore interface {
	Create(route *models.Route) (*models.Route, error)
	FindAll() ([]*models.Route, error)
	FindByID(id string) (*models.Route, error)
	FindByEndpoints(startTerminalID, endTerminalID string) (*models.Route, error)
}

type RouteService struct {
	store         RouteStore
	terminalStore TerminalStore
	cache         *cache.Manager
}

func NewRouteService(store RouteStore, terminalStore TerminalStore) *RouteService {
	return &RouteService{store: store, terminalStore: terminalStore}
}

func (s *RouteService) SetCacheManager(manager *cache.Manager) {
	s.cache = manager
}

const routeListCacheKey = "all_routes"

type CreateRouteRequest struct {
	RouteName         string `json:"routeName" validate:"required,min=1,max=100"`
	StartTerminalID   string `json:"startTerminalId" validate:"required"`
	EndTerminalID     string `json:"endTerminalId" validate:"required"`
	EstimatedDuration int    `json:"estimatedDuration,omitempty" validate:"omitempty,min=1"`
	Status            string `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

// GetAllRoutes returns every route with its terminal references resolved.
func (s *RouteService) GetAllRoutes() ([]*models.PopulatedRoute, error) {
	if s.cache != nil {
		var cached []*models.PopulatedRoute
		hit, err := s.cache.Get(routeListCacheKey, &cached)
		if err != nil {
			log.Printf("Cache error for GetAllRoutes: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	routes, err := s.store.FindAll()
	if err != nil {
		return nil, err
	}

	populated := make([]*models.PopulatedRoute, 0, len(routes))
	for _, route := range routes {
		populated = append(populated, s.populate(route))
	}

	if s.cache != nil {
		if err := s.cache.Set(routeListCacheKey, populated, cache.ListTTL); err != nil {
			log.Printf("Failed to cache route list: %v", err)
		}
	}

	return populated, nil
}

func (s *RouteService) GetRouteByID(id string) (*models.PopulatedRoute, error) {
	route, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.populate(route), nil
}

// CreateRoute persists a route after the self-loop and duplicate guards
// pass. Duplicate detection is direction-sensitive: (A,B) and (B,A) are
// distinct routes.
func (s *RouteService) CreateRoute(req *CreateRouteRequest) (*models.Route, error) {
	if req.StartTerminalID == req.EndTerminalID {
		return nil, errs.New(errs.KindValidation, "Start and end terminals must be different.")
	}

	if _, err := s.terminalStore.FindByID(req.StartTerminalID); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "Start terminal does not exist.", err)
	}
	if _, err := s.terminalStore.FindByID(req.EndTerminalID); err != nil {
		return nil, errs.Wrap(errs.KindValidation, "End terminal does not exist.", err)
	}

	existing, err := s.store.FindByEndpoints(req.StartTerminalID, req.EndTerminalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.New(errs.KindConflict, "A route with these terminals already exists.")
	}

	status := req.Status
	if status == "" {
		status = models.RouteStatusActive
	}

	route := &models.Route{
		ID:                primitive.NewObjectID(),
		RouteName:         req.RouteName,
		StartTerminalID:   req.StartTerminalID,
		EndTerminalID:     req.EndTerminalID,
		EstimatedDuration: req.EstimatedDuration,
		Status:            status,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	created, err := s.store.Create(route)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(routeListCacheKey); err != nil {
			log.Printf("Failed to invalidate route list cache: %v", err)
		}
	}

	return created, nil
}

// populate resolves terminal references, tolerating dangling ones: a route
// whose terminal was removed still serializes, with the reference left nil.
func (s *RouteService) populate(route *models.Route) *models.PopulatedRoute {
	populated := &models.PopulatedRoute{Route: *route}

	if start, err := s.terminalStore.FindByID(route.StartTerminalID); err == nil {
		populated.StartTerminal = start
	}
	if end, err := s.terminalStore.FindByID(route.EndTerminalID); err == nil {
		populated.EndTerminal = end
	}

	return populated
}
