package services

import (
	"context"
	"errors"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// InventoryService keeps apartment unit counts correct and the parent
// project's availableUnits rollup in step with them.
type InventoryService struct {
	apartments repository.ApartmentRepository
	projects   repository.ProjectRepository
	logger     *zap.Logger
}

func NewInventoryService(apartments repository.ApartmentRepository, projects repository.ProjectRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		apartments: apartments,
		projects:   projects,
		logger:     logger,
	}
}

// CreateUnit inserts a new apartment record. AvailableUnits defaults to
// TotalUnits when the payload leaves both counters at zero.
func (s *InventoryService) CreateUnit(ctx context.Context, unit *models.ApartmentUnit) error {
	if unit.Availability.TotalUnits < 1 {
		return ErrInvalidTotal
	}
	if _, err := s.projects.FindActiveByID(ctx, unit.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if unit.Availability.AvailableUnits == 0 && unit.Availability.SoldUnits == 0 {
		unit.Availability.AvailableUnits = unit.Availability.TotalUnits
	}
	unit.Availability.IsAvailable = unit.Availability.AvailableUnits > 0

	now := time.Now()
	if unit.ID.IsZero() {
		unit.ID = primitive.NewObjectID()
	}
	unit.IsActive = true
	unit.CreatedAt = now
	unit.UpdatedAt = now

	if err := s.apartments.Insert(ctx, unit); err != nil {
		return err
	}
	s.recompute(ctx, unit.ProjectID)
	return nil
}

// UpdateUnit persists a direct admin edit. This path bypasses the ledger
// preconditions; whoever edits counters by hand owns the consequences.
func (s *InventoryService) UpdateUnit(ctx context.Context, unit *models.ApartmentUnit) error {
	unit.UpdatedAt = time.Now()
	if err := s.apartments.Replace(ctx, unit); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnitNotFound
		}
		return err
	}
	s.recompute(ctx, unit.ProjectID)
	return nil
}

// DeleteUnit retires an apartment record. Records are never removed
// physically, so history and lead references stay intact.
func (s *InventoryService) DeleteUnit(ctx context.Context, id primitive.ObjectID) error {
	unit, err := s.apartments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnitNotFound
		}
		return err
	}
	if err := s.apartments.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnitNotFound
		}
		return err
	}
	s.recompute(ctx, unit.ProjectID)
	return nil
}

func (s *InventoryService) GetUnit(ctx context.Context, id primitive.ObjectID) (*models.ApartmentUnit, error) {
	unit, err := s.apartments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnitNotFound
	}
	return unit, err
}

func (s *InventoryService) ListUnits(ctx context.Context, projectID primitive.ObjectID, includeInactive bool) ([]models.ApartmentUnit, error) {
	return s.apartments.ListByProject(ctx, projectID, includeInactive)
}

// BookUnits moves quantity units from available to sold. The write is guarded
// on the counters read here, so two racing bookings cannot both succeed on the
// same stock; the loser gets ErrUnitConflict and nothing is mutated.
func (s *InventoryService) BookUnits(ctx context.Context, id primitive.ObjectID, quantity int) (*models.ApartmentUnit, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unit, err := s.apartments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	prev := unit.Availability
	if prev.AvailableUnits < quantity {
		return nil, &InsufficientInventoryError{
			UnitID:    id.Hex(),
			Requested: quantity,
			Available: prev.AvailableUnits,
		}
	}

	next := prev
	next.AvailableUnits -= quantity
	next.SoldUnits += quantity
	next.IsAvailable = next.AvailableUnits > 0

	if err := s.applyAvailability(ctx, id, prev, next); err != nil {
		return nil, err
	}

	unit.Availability = next
	s.recompute(ctx, unit.ProjectID)
	return unit, nil
}

// ReleaseUnits moves quantity units back from sold to available, e.g. on a
// cancelled booking. Any successful release marks the unit available again.
func (s *InventoryService) ReleaseUnits(ctx context.Context, id primitive.ObjectID, quantity int) (*models.ApartmentUnit, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unit, err := s.apartments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	prev := unit.Availability
	if prev.SoldUnits < quantity {
		return nil, &OverReleaseError{
			UnitID:    id.Hex(),
			Requested: quantity,
			Sold:      prev.SoldUnits,
		}
	}

	next := prev
	next.AvailableUnits += quantity
	next.SoldUnits -= quantity
	next.IsAvailable = true

	if err := s.applyAvailability(ctx, id, prev, next); err != nil {
		return nil, err
	}

	unit.Availability = next
	s.recompute(ctx, unit.ProjectID)
	return unit, nil
}

func (s *InventoryService) applyAvailability(ctx context.Context, id primitive.ObjectID, prev, next models.Availability) error {
	err := s.apartments.ReplaceAvailability(ctx, id, prev, next)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUnitNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrUnitConflict
	}
	return err
}

// RecomputeProjectAvailability rebuilds a project's availableUnits rollup from
// its apartment records. Idempotent; safe to run at any time.
func (s *InventoryService) RecomputeProjectAvailability(ctx context.Context, projectID primitive.ObjectID) error {
	count, err := s.apartments.CountAvailableActive(ctx, projectID)
	if err != nil {
		return err
	}
	return s.projects.SetAvailableUnits(ctx, projectID, count)
}

// recompute runs the rollup rebuild after a successful unit write. The unit
// write is the record of truth; a failed rollup is logged, not rolled back.
func (s *InventoryService) recompute(ctx context.Context, projectID primitive.ObjectID) {
	if err := s.RecomputeProjectAvailability(ctx, projectID); err != nil {
		s.logger.Warn("project availability recompute failed",
			zap.String("projectId", projectID.Hex()),
			zap.Error(err))
	}
}
