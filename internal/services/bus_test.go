package services

import (
	"testing"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBusStore struct {
	buses []*models.Bus
}

func (f *fakeBusStore) Create(bus *models.Bus) (*models.Bus, error) {
	f.buses = append(f.buses, bus)
	return bus, nil
}

func (f *fakeBusStore) FindAll() ([]*models.Bus, error) {
	var live []*models.Bus
	for _, b := range f.buses {
		if !b.IsDeleted {
			live = append(live, b)
		}
	}
	return live, nil
}

func (f *fakeBusStore) FindByID(id string) (*models.Bus, error) {
	for _, b := range f.buses {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "Bus not found.")
}

func (f *fakeBusStore) FindByNumberOrPlate(busNumber, plateNumber, excludeID string) (*models.Bus, error) {
	for _, b := range f.buses {
		if b.IsDeleted {
			continue
		}
		if excludeID != "" && b.ID.Hex() == excludeID {
			continue
		}
		if b.BusNumber == busNumber || b.PlateNumber == plateNumber {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBusStore) Update(id string, bus *models.Bus) (*models.Bus, error) {
	for i, b := range f.buses {
		if b.ID.Hex() == id {
			f.buses[i] = bus
			return bus, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "Bus not found.")
}

func (f *fakeBusStore) SoftDelete(id string) error {
	for _, b := range f.buses {
		if b.ID.Hex() == id && !b.IsDeleted {
			b.IsDeleted = true
			return nil
		}
	}
	return errs.New(errs.KindNotFound, "Bus not found.")
}

func seedBus(store *fakeBusStore, busNumber, plateNumber string) *models.Bus {
	bus := &models.Bus{
		ID:          primitive.NewObjectID(),
		BusNumber:   busNumber,
		PlateNumber: plateNumber,
		Capacity:    50,
		Status:      models.BusStatusActive,
	}
	store.buses = append(store.buses, bus)
	return bus
}

func TestCreateBus(t *testing.T) {
	t.Run("creates bus with default status", func(t *testing.T) {
		service := NewBusService(&fakeBusStore{})

		created, err := service.CreateBus(&CreateBusRequest{
			BusNumber:   "BUS-001",
			PlateNumber: "ABC-1234",
			Capacity:    50,
		})

		require.NoError(t, err)
		assert.Equal(t, models.BusStatusActive, created.Status)
	})

	t.Run("duplicate bus number", func(t *testing.T) {
		store := &fakeBusStore{}
		seedBus(store, "BUS-001", "ABC-1234")
		service := NewBusService(store)

		_, err := service.CreateBus(&CreateBusRequest{BusNumber: "BUS-001", PlateNumber: "XYZ-9999", Capacity: 40})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Contains(t, err.Error(), "bus number")
	})

	t.Run("duplicate plate number", func(t *testing.T) {
		store := &fakeBusStore{}
		seedBus(store, "BUS-001", "ABC-1234")
		service := NewBusService(store)

		_, err := service.CreateBus(&CreateBusRequest{BusNumber: "BUS-002", PlateNumber: "ABC-1234", Capacity: 40})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Contains(t, err.Error(), "plate number")
	})

	t.Run("both collide: plate number message wins", func(t *testing.T) {
		store := &fakeBusStore{}
		seedBus(store, "BUS-001", "ABC-1234")
		service := NewBusService(store)

		_, err := service.CreateBus(&CreateBusRequest{BusNumber: "BUS-001", PlateNumber: "ABC-1234", Capacity: 40})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "plate number")
	})

	t.Run("deleted bus does not block identifier reuse", func(t *testing.T) {
		store := &fakeBusStore{}
		bus := seedBus(store, "BUS-001", "ABC-1234")
		service := NewBusService(store)

		require.NoError(t, service.DeleteBusByID(bus.ID.Hex()))

		_, err := service.CreateBus(&CreateBusRequest{BusNumber: "BUS-001", PlateNumber: "ABC-1234", Capacity: 40})
		require.NoError(t, err)
	})
}

func TestUpdateBusByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		service := NewBusService(&fakeBusStore{})

		_, err := service.UpdateBusByID(primitive.NewObjectID().Hex(), &UpdateBusRequest{Capacity: 60})

		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("capacity-only update never conflicts with itself", func(t *testing.T) {
		store := &fakeBusStore{}
		bus := seedBus(store, "BUS-001", "ABC-1234")
		service := NewBusService(store)

		updated, err := service.UpdateBusByID(bus.ID.Hex(), &UpdateBusRequest{Capacity: 60})

		require.NoError(t, err)
		assert.Equal(t, 60, updated.Capacity)
	})

	t.Run("changing to another bus's plate conflicts", func(t *testing.T) {
		store := &fakeBusStore{}
		seedBus(store, "BUS-001", "ABC-1234")
		bus := seedBus(store, "BUS-002", "XYZ-9999")
		service := NewBusService(store)

		_, err := service.UpdateBusByID(bus.ID.Hex(), &UpdateBusRequest{PlateNumber: "ABC-1234"})

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Contains(t, err.Error(), "plate number")
	})

	t.Run("partial patch checks effective identifiers", func(t *testing.T) {
		store := &fakeBusStore{}
		seedBus(store, "BUS-001", "ABC-1234")
		bus := seedBus(store, "BUS-002", "XYZ-9999")
		service := NewBusService(store)

		// Only the bus number changes; the existing plate carries over and
		// must not count as a collision with the record itself.
		updated, err := service.UpdateBusByID(bus.ID.Hex(), &UpdateBusRequest{BusNumber: "BUS-003"})

		require.NoError(t, err)
		assert.Equal(t, "BUS-003", updated.BusNumber)
		assert.Equal(t, "XYZ-9999", updated.PlateNumber)
	})
}
