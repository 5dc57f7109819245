package services

import (
	"math"
	"testing"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTerminalStore is an in-memory TerminalStore mirroring the repository's
// query semantics: exact-match name lookup, inclusive proximity box, and
// nil-on-no-match for the guard lookups.
type fakeTerminalStore struct {
	terminals []*models.Terminal
}

func (f *fakeTerminalStore) Create(terminal *models.Terminal) (*models.Terminal, error) {
	f.terminals = append(f.terminals, terminal)
	return terminal, nil
}

func (f *fakeTerminalStore) FindAll() ([]*models.Terminal, error) {
	return f.terminals, nil
}

func (f *fakeTerminalStore) FindByID(id string) (*models.Terminal, error) {
	for _, t := range f.terminals {
		if t.ID.Hex() == id {
			return t, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "Terminal not found.")
}

func (f *fakeTerminalStore) FindByName(name string) (*models.Terminal, error) {
	for _, t := range f.terminals {
		if t.TerminalName == name {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTerminalStore) FindNear(lat, lng float64, excludeID string) (*models.Terminal, error) {
	for _, t := range f.terminals {
		if excludeID != "" && t.ID.Hex() == excludeID {
			continue
		}
		if math.Abs(t.LocationLat-lat) <= models.ProximityBoxDegrees &&
			math.Abs(t.LocationLng-lng) <= models.ProximityBoxDegrees {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTerminalStore) Update(id string, terminal *models.Terminal) (*models.Terminal, error) {
	for i, t := range f.terminals {
		if t.ID.Hex() == id {
			f.terminals[i] = terminal
			return terminal, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "Terminal not found.")
}

func floatPtr(v float64) *float64 { return &v }

func seedTerminal(store *fakeTerminalStore, name string, lat, lng float64) *models.Terminal {
	terminal := &models.Terminal{
		ID:           primitive.NewObjectID(),
		TerminalName: name,
		LocationLat:  lat,
		LocationLng:  lng,
		Status:       models.TerminalStatusActive,
	}
	store.terminals = append(store.terminals, terminal)
	return terminal
}

func TestCreateTerminal(t *testing.T) {
	t.Run("creates terminal with defaults", func(t *testing.T) {
		store := &fakeTerminalStore{}
		service := NewTerminalService(store)

		created, err := service.CreateTerminal(&CreateTerminalRequest{
			TerminalName: "Central Terminal",
			LocationLat:  floatPtr(14.5995),
			LocationLng:  floatPtr(120.9842),
		})

		require.NoError(t, err)
		assert.Equal(t, "Central Terminal", created.TerminalName)
		assert.Equal(t, models.TerminalStatusActive, created.Status)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "Central", 14.0, 121.0)
		service := NewTerminalService(store)

		_, err := service.CreateTerminal(&CreateTerminalRequest{
			TerminalName: "Central",
			LocationLat:  floatPtr(15.0),
			LocationLng:  floatPtr(122.0),
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("name comparison is case-sensitive", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "Central", 14.0, 121.0)
		service := NewTerminalService(store)

		created, err := service.CreateTerminal(&CreateTerminalRequest{
			TerminalName: "central",
			LocationLat:  floatPtr(15.0),
			LocationLng:  floatPtr(122.0),
		})

		require.NoError(t, err)
		assert.Equal(t, "central", created.TerminalName)
	})

	t.Run("rejects location within proximity box", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "North", 14.6000, 121.0000)
		service := NewTerminalService(store)

		// Offset by exactly the box size on one axis: still a collision.
		_, err := service.CreateTerminal(&CreateTerminalRequest{
			TerminalName: "North Annex",
			LocationLat:  floatPtr(14.6000 + models.ProximityBoxDegrees),
			LocationLng:  floatPtr(121.0000),
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("accepts location strictly outside proximity box", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "North", 14.6000, 121.0000)
		service := NewTerminalService(store)

		_, err := service.CreateTerminal(&CreateTerminalRequest{
			TerminalName: "North Annex",
			LocationLat:  floatPtr(14.6000 + 2*models.ProximityBoxDegrees),
			LocationLng:  floatPtr(121.0000),
		})

		require.NoError(t, err)
	})
}

func TestUpdateTerminalByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		service := NewTerminalService(&fakeTerminalStore{})

		_, err := service.UpdateTerminalByID(primitive.NewObjectID().Hex(), &UpdateTerminalRequest{Status: "inactive"})

		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("status-only update skips guards", func(t *testing.T) {
		store := &fakeTerminalStore{}
		terminal := seedTerminal(store, "Central", 14.0, 121.0)
		// A second terminal right on top of the first would trip the
		// proximity guard if it ran against the unchanged coordinates.
		seedTerminal(store, "Shadow", 14.0, 121.0)
		service := NewTerminalService(store)

		updated, err := service.UpdateTerminalByID(terminal.ID.Hex(), &UpdateTerminalRequest{Status: "inactive"})

		require.NoError(t, err)
		assert.Equal(t, "inactive", updated.Status)
	})

	t.Run("renaming to an existing name conflicts", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "Central", 14.0, 121.0)
		terminal := seedTerminal(store, "North", 15.0, 122.0)
		service := NewTerminalService(store)

		_, err := service.UpdateTerminalByID(terminal.ID.Hex(), &UpdateTerminalRequest{TerminalName: "Central"})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("keeping own name does not conflict", func(t *testing.T) {
		store := &fakeTerminalStore{}
		terminal := seedTerminal(store, "Central", 14.0, 121.0)
		service := NewTerminalService(store)

		updated, err := service.UpdateTerminalByID(terminal.ID.Hex(), &UpdateTerminalRequest{TerminalName: "Central"})

		require.NoError(t, err)
		assert.Equal(t, "Central", updated.TerminalName)
	})

	t.Run("moving near another terminal conflicts", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "Central", 14.0, 121.0)
		terminal := seedTerminal(store, "North", 15.0, 122.0)
		service := NewTerminalService(store)

		_, err := service.UpdateTerminalByID(terminal.ID.Hex(), &UpdateTerminalRequest{
			LocationLat: floatPtr(14.00005),
			LocationLng: floatPtr(121.00005),
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("partial coordinate patch uses existing value for the other axis", func(t *testing.T) {
		store := &fakeTerminalStore{}
		seedTerminal(store, "Central", 14.0, 121.0)
		terminal := seedTerminal(store, "North", 14.0, 125.0)
		service := NewTerminalService(store)

		// Only longitude changes; effective position becomes (14.0, 121.0),
		// colliding with Central.
		_, err := service.UpdateTerminalByID(terminal.ID.Hex(), &UpdateTerminalRequest{
			LocationLng: floatPtr(121.0),
		})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("nudging within own box does not self-conflict", func(t *testing.T) {
		store := &fakeTerminalStore{}
		terminal := seedTerminal(store, "Central", 14.0, 121.0)
		service := NewTerminalService(store)

		updated, err := service.UpdateTerminalByID(terminal.ID.Hex(), &UpdateTerminalRequest{
			LocationLat: floatPtr(14.00005),
		})

		require.NoError(t, err)
		assert.Equal(t, 14.00005, updated.LocationLat)
	})
}
