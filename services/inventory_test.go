package services

import (
	"context"
	"testing"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newInventoryFixture() (*InventoryService, *fakeApartmentRepo, *fakeProjectRepo, *models.Project) {
	apartments := newFakeApartmentRepo()
	projects := newFakeProjectRepo()
	project := &models.Project{Name: "Crestline Heights", IsActive: true}
	projects.add(project)
	svc := NewInventoryService(apartments, projects, zap.NewNop())
	return svc, apartments, projects, project
}

func seedUnit(apartments *fakeApartmentRepo, projectID primitive.ObjectID, total, available, sold int) *models.ApartmentUnit {
	unit := &models.ApartmentUnit{
		ProjectID: projectID,
		Name:      "2BHK",
		IsActive:  true,
		Availability: models.Availability{
			TotalUnits:     total,
			AvailableUnits: available,
			SoldUnits:      sold,
			IsAvailable:    available > 0,
		},
	}
	apartments.add(unit)
	return unit
}

func TestBookAndReleaseScenario(t *testing.T) {
	svc, apartments, _, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 10, 10, 0)
	ctx := context.Background()

	got, err := svc.BookUnits(ctx, unit.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Availability.AvailableUnits)
	assert.Equal(t, 4, got.Availability.SoldUnits)
	assert.True(t, got.Availability.IsAvailable)

	got, err = svc.BookUnits(ctx, unit.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Availability.AvailableUnits)
	assert.Equal(t, 10, got.Availability.SoldUnits)
	assert.False(t, got.Availability.IsAvailable)

	got, err = svc.ReleaseUnits(ctx, unit.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Availability.AvailableUnits)
	assert.Equal(t, 7, got.Availability.SoldUnits)
	assert.True(t, got.Availability.IsAvailable)
}

func TestBookReleaseKeepsTotalInvariant(t *testing.T) {
	svc, apartments, _, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 8, 8, 0)
	ctx := context.Background()

	for _, step := range []struct {
		book     bool
		quantity int
	}{
		{true, 3}, {true, 2}, {false, 4}, {true, 5}, {false, 1}, {true, 2},
	} {
		var err error
		if step.book {
			_, err = svc.BookUnits(ctx, unit.ID, step.quantity)
		} else {
			_, err = svc.ReleaseUnits(ctx, unit.ID, step.quantity)
		}
		require.NoError(t, err)

		stored, err := apartments.FindByID(ctx, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.Availability.TotalUnits,
			stored.Availability.AvailableUnits+stored.Availability.SoldUnits)
		assert.Equal(t, stored.Availability.AvailableUnits > 0, stored.Availability.IsAvailable)
	}
}

func TestBookUnitsInsufficientInventory(t *testing.T) {
	svc, apartments, _, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 10, 2, 8)
	ctx := context.Background()

	_, err := svc.BookUnits(ctx, unit.ID, 5)
	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, unit.ID.Hex(), insufficient.UnitID)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	stored, err := apartments.FindByID(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Availability.AvailableUnits)
	assert.Equal(t, 8, stored.Availability.SoldUnits)
}

func TestReleaseUnitsOverRelease(t *testing.T) {
	svc, apartments, _, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 10, 7, 3)
	ctx := context.Background()

	_, err := svc.ReleaseUnits(ctx, unit.ID, 4)
	var overRelease *OverReleaseError
	require.ErrorAs(t, err, &overRelease)
	assert.Equal(t, 4, overRelease.Requested)
	assert.Equal(t, 3, overRelease.Sold)

	stored, err := apartments.FindByID(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Availability.AvailableUnits)
	assert.Equal(t, 3, stored.Availability.SoldUnits)
}

func TestBookUnitsInvalidQuantity(t *testing.T) {
	svc, apartments, _, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 10, 10, 0)

	for _, quantity := range []int{0, -2} {
		_, err := svc.BookUnits(context.Background(), unit.ID, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestBookUnitsUnknownUnit(t *testing.T) {
	svc, _, _, _ := newInventoryFixture()

	_, err := svc.BookUnits(context.Background(), primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestBookUnitsLostRace(t *testing.T) {
	svc, apartments, _, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 10, 5, 5)
	apartments.replaceAvailabilityErr = repository.ErrConflict

	_, err := svc.BookUnits(context.Background(), unit.ID, 1)
	assert.ErrorIs(t, err, ErrUnitConflict)

	stored, err := apartments.FindByID(context.Background(), unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Availability.AvailableUnits)
}

func TestBookingUpdatesProjectRollup(t *testing.T) {
	svc, apartments, projects, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 2, 2, 0)
	seedUnit(apartments, project.ID, 5, 5, 0)
	ctx := context.Background()

	_, err := svc.BookUnits(ctx, unit.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, projects.projects[project.ID].AvailableUnits)

	_, err = svc.ReleaseUnits(ctx, unit.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, projects.projects[project.ID].AvailableUnits)
}

func TestCreateUnitDefaultsAvailability(t *testing.T) {
	svc, _, projects, project := newInventoryFixture()
	ctx := context.Background()

	unit := &models.ApartmentUnit{
		ProjectID:    project.ID,
		Name:         "3BHK",
		Availability: models.Availability{TotalUnits: 6},
	}
	require.NoError(t, svc.CreateUnit(ctx, unit))

	assert.Equal(t, 6, unit.Availability.AvailableUnits)
	assert.Equal(t, 0, unit.Availability.SoldUnits)
	assert.True(t, unit.Availability.IsAvailable)
	assert.True(t, unit.IsActive)
	assert.Equal(t, 1, projects.projects[project.ID].AvailableUnits)
}

func TestCreateUnitValidation(t *testing.T) {
	svc, _, _, project := newInventoryFixture()
	ctx := context.Background()

	err := svc.CreateUnit(ctx, &models.ApartmentUnit{ProjectID: project.ID})
	assert.ErrorIs(t, err, ErrInvalidTotal)

	err = svc.CreateUnit(ctx, &models.ApartmentUnit{
		ProjectID:    primitive.NewObjectID(),
		Availability: models.Availability{TotalUnits: 3},
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDeleteUnitUpdatesRollup(t *testing.T) {
	svc, apartments, projects, project := newInventoryFixture()
	unit := seedUnit(apartments, project.ID, 4, 4, 0)
	seedUnit(apartments, project.ID, 4, 4, 0)
	ctx := context.Background()

	require.NoError(t, svc.RecomputeProjectAvailability(ctx, project.ID))
	require.Equal(t, 2, projects.projects[project.ID].AvailableUnits)

	require.NoError(t, svc.DeleteUnit(ctx, unit.ID))
	assert.Equal(t, 1, projects.projects[project.ID].AvailableUnits)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	svc, apartments, projects, project := newInventoryFixture()
	seedUnit(apartments, project.ID, 4, 4, 0)
	seedUnit(apartments, project.ID, 2, 0, 2)
	retired := seedUnit(apartments, project.ID, 3, 3, 0)
	retired.IsActive = false
	ctx := context.Background()

	require.NoError(t, svc.RecomputeProjectAvailability(ctx, project.ID))
	first := projects.projects[project.ID].AvailableUnits

	require.NoError(t, svc.RecomputeProjectAvailability(ctx, project.ID))
	assert.Equal(t, first, projects.projects[project.ID].AvailableUnits)
	assert.Equal(t, 1, first)
}
