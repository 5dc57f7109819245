package services

import (
	"testing"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRouteStore struct {
	routes []*models.Route
}

func (f *fakeRouteStore) Create(route *models.Route) (*models.Route, error) {
	f.routes = append(f.routes, route)
	return route, nil
}

func (f *fakeRouteStore) FindAll() ([]*models.Route, error) {
	return f.routes, nil
}

func (f *fakeRouteStore) FindByID(id string) (*models.Route, error) {
	for _, r := range f.routes {
		if r.ID.Hex() == id {
			return r, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "Route not found.")
}

func (f *fakeRouteStore) FindByEndpoints(startTerminalID, endTerminalID string) (*models.Route, error) {
	for _, r := range f.routes {
		if r.StartTerminalID == startTerminalID && r.EndTerminalID == endTerminalID {
			return r, nil
		}
	}
	return nil, nil
}

func newRouteFixture(t *testing.T) (*RouteService, *fakeRouteStore, string, string) {
	t.Helper()
	terminalStore := &fakeTerminalStore{}
	a := seedTerminal(terminalStore, "Terminal A", 14.0, 121.0)
	b := seedTerminal(terminalStore, "Terminal B", 15.0, 122.0)
	routeStore := &fakeRouteStore{}
	return NewRouteService(routeStore, terminalStore), routeStore, a.ID.Hex(), b.ID.Hex()
}

func TestCreateRoute(t *testing.T) {
	t.Run("creates route", func(t *testing.T) {
		service, _, a, b := newRouteFixture(t)

		created, err := service.CreateRoute(&CreateRouteRequest{
			RouteName:         "A-B Express",
			StartTerminalID:   a,
			EndTerminalID:     b,
			EstimatedDuration: 45,
		})

		require.NoError(t, err)
		assert.Equal(t, models.RouteStatusActive, created.Status)
	})

	t.Run("rejects self-loop regardless of other fields", func(t *testing.T) {
		service, _, a, _ := newRouteFixture(t)

		_, err := service.CreateRoute(&CreateRouteRequest{
			RouteName:       "Loop",
			StartTerminalID: a,
			EndTerminalID:   a,
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("rejects missing terminal", func(t *testing.T) {
		service, _, a, _ := newRouteFixture(t)

		_, err := service.CreateRoute(&CreateRouteRequest{
			RouteName:       "Nowhere",
			StartTerminalID: a,
			EndTerminalID:   primitive.NewObjectID().Hex(),
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("rejects duplicate ordered pair", func(t *testing.T) {
		service, _, a, b := newRouteFixture(t)

		_, err := service.CreateRoute(&CreateRouteRequest{RouteName: "First", StartTerminalID: a, EndTerminalID: b})
		require.NoError(t, err)

		_, err = service.CreateRoute(&CreateRouteRequest{RouteName: "Second", StartTerminalID: a, EndTerminalID: b})
		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("reverse direction is a distinct route", func(t *testing.T) {
		service, _, a, b := newRouteFixture(t)

		_, err := service.CreateRoute(&CreateRouteRequest{RouteName: "Outbound", StartTerminalID: a, EndTerminalID: b})
		require.NoError(t, err)

		_, err = service.CreateRoute(&CreateRouteRequest{RouteName: "Inbound", StartTerminalID: b, EndTerminalID: a})
		require.NoError(t, err)
	})
}

func TestGetRoutesPopulated(t *testing.T) {
	t.Run("resolves terminal references", func(t *testing.T) {
		service, _, a, b := newRouteFixture(t)

		created, err := service.CreateRoute(&CreateRouteRequest{RouteName: "A-B", StartTerminalID: a, EndTerminalID: b})
		require.NoError(t, err)

		populated, err := service.GetRouteByID(created.ID.Hex())
		require.NoError(t, err)
		require.NotNil(t, populated.StartTerminal)
		require.NotNil(t, populated.EndTerminal)
		assert.Equal(t, "Terminal A", populated.StartTerminal.TerminalName)
		assert.Equal(t, "Terminal B", populated.EndTerminal.TerminalName)
	})

	t.Run("tolerates dangling terminal reference", func(t *testing.T) {
		terminalStore := &fakeTerminalStore{}
		a := seedTerminal(terminalStore, "Terminal A", 14.0, 121.0)
		routeStore := &fakeRouteStore{}
		route := &models.Route{
			ID:              primitive.NewObjectID(),
			RouteName:       "Orphaned",
			StartTerminalID: a.ID.Hex(),
			EndTerminalID:   primitive.NewObjectID().Hex(),
		}
		routeStore.routes = append(routeStore.routes, route)
		service := NewRouteService(routeStore, terminalStore)

		populated, err := service.GetRouteByID(route.ID.Hex())
		require.NoError(t, err)
		assert.NotNil(t, populated.StartTerminal)
		assert.Nil(t, populated.EndTerminal)
	})
}
