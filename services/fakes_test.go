package services

import (
	"context"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the repository interfaces so the bookkeeping
// services can be tested without a database.

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]*models.Project)}
}

func (f *fakeProjectRepo) add(project *models.Project) {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	f.projects[project.ID] = project
}

func (f *fakeProjectRepo) FindActiveByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok || !project.IsActive {
		return nil, repository.ErrNotFound
	}
	clone := *project
	return &clone, nil
}

func (f *fakeProjectRepo) SetAvailableUnits(_ context.Context, id primitive.ObjectID, count int) error {
	project, ok := f.projects[id]
	if !ok {
		return repository.ErrNotFound
	}
	project.AvailableUnits = count
	return nil
}

type fakeApartmentRepo struct {
	units map[primitive.ObjectID]*models.ApartmentUnit

	// replaceAvailabilityErr, when set, is returned by the next
	// ReplaceAvailability call to simulate a lost race or store failure.
	replaceAvailabilityErr error
}

func newFakeApartmentRepo() *fakeApartmentRepo {
	return &fakeApartmentRepo{units: make(map[primitive.ObjectID]*models.ApartmentUnit)}
}

func (f *fakeApartmentRepo) add(unit *models.ApartmentUnit) {
	if unit.ID.IsZero() {
		unit.ID = primitive.NewObjectID()
	}
	f.units[unit.ID] = unit
}

func (f *fakeApartmentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.ApartmentUnit, error) {
	unit, ok := f.units[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *unit
	return &clone, nil
}

func (f *fakeApartmentRepo) Insert(_ context.Context, unit *models.ApartmentUnit) error {
	clone := *unit
	f.units[unit.ID] = &clone
	return nil
}

func (f *fakeApartmentRepo) Replace(_ context.Context, unit *models.ApartmentUnit) error {
	if _, ok := f.units[unit.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *unit
	f.units[unit.ID] = &clone
	return nil
}

func (f *fakeApartmentRepo) ReplaceAvailability(_ context.Context, id primitive.ObjectID, prev, next models.Availability) error {
	if f.replaceAvailabilityErr != nil {
		err := f.replaceAvailabilityErr
		f.replaceAvailabilityErr = nil
		return err
	}
	unit, ok := f.units[id]
	if !ok {
		return repository.ErrNotFound
	}
	if unit.Availability.AvailableUnits != prev.AvailableUnits || unit.Availability.SoldUnits != prev.SoldUnits {
		return repository.ErrConflict
	}
	unit.Availability = next
	unit.UpdatedAt = time.Now()
	return nil
}

func (f *fakeApartmentRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	unit, ok := f.units[id]
	if !ok {
		return repository.ErrNotFound
	}
	unit.IsActive = false
	return nil
}

func (f *fakeApartmentRepo) CountAvailableActive(_ context.Context, projectID primitive.ObjectID) (int, error) {
	count := 0
	for _, unit := range f.units {
		if unit.ProjectID == projectID && unit.IsActive && unit.Availability.IsAvailable {
			count++
		}
	}
	return count, nil
}

func (f *fakeApartmentRepo) ListByProject(_ context.Context, projectID primitive.ObjectID, includeInactive bool) ([]models.ApartmentUnit, error) {
	var units []models.ApartmentUnit
	for _, unit := range f.units {
		if unit.ProjectID != projectID {
			continue
		}
		if !includeInactive && !unit.IsActive {
			continue
		}
		units = append(units, *unit)
	}
	return units, nil
}

type fakeLeadRepo struct {
	leads map[primitive.ObjectID]*models.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[primitive.ObjectID]*models.Lead)}
}

func cloneLead(lead *models.Lead) *models.Lead {
	clone := *lead
	clone.ContactHistory = append([]models.ContactRecord(nil), lead.ContactHistory...)
	clone.Notes = append([]models.LeadNote(nil), lead.Notes...)
	return &clone
}

func (f *fakeLeadRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneLead(lead), nil
}

func (f *fakeLeadRepo) FindActiveByMobileAndProject(_ context.Context, mobile string, projectID primitive.ObjectID) (*models.Lead, error) {
	for _, lead := range f.leads {
		if lead.IsActive && lead.Mobile == mobile && lead.ProjectID == projectID {
			return cloneLead(lead), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLeadRepo) Insert(_ context.Context, lead *models.Lead) error {
	f.leads[lead.ID] = cloneLead(lead)
	return nil
}

func (f *fakeLeadRepo) Replace(_ context.Context, lead *models.Lead) error {
	if _, ok := f.leads[lead.ID]; !ok {
		return repository.ErrNotFound
	}
	f.leads[lead.ID] = cloneLead(lead)
	return nil
}

func (f *fakeLeadRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	lead, ok := f.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	lead.IsActive = false
	return nil
}

func (f *fakeLeadRepo) List(_ context.Context, filter repository.LeadListFilter) ([]models.Lead, error) {
	var leads []models.Lead
	for _, lead := range f.leads {
		if !lead.IsActive {
			continue
		}
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		if filter.Source != "" && lead.Source != filter.Source {
			continue
		}
		if filter.ProjectID != nil && lead.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Qualified != nil && lead.IsQualified != *filter.Qualified {
			continue
		}
		leads = append(leads, *cloneLead(lead))
	}
	return leads, nil
}

func (f *fakeLeadRepo) FindFollowUpsDue(_ context.Context, asOf time.Time) ([]models.Lead, error) {
	var leads []models.Lead
	for _, lead := range f.leads {
		if !lead.IsActive || lead.FollowUpDate == nil || lead.FollowUpDate.After(asOf) {
			continue
		}
		switch lead.Status {
		case models.LeadStatusConverted, models.LeadStatusLost, models.LeadStatusNotInterested:
			continue
		}
		leads = append(leads, *cloneLead(lead))
	}
	return leads, nil
}
