package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// LeadInput is one inbound public submission (contact form, brochure
// download). IPAddress, UserAgent and Referrer are captured opaquely.
type LeadInput struct {
	Name        string
	Email       string
	Mobile      string
	ProjectID   primitive.ObjectID
	ApartmentID *primitive.ObjectID
	Source      models.LeadSource
	LeadType    models.LeadType
	Message     string
	IPAddress   string
	UserAgent   string
	Referrer    string
}

// LeadService deduplicates inbound submissions by (mobile, project) and owns
// the lead status vocabulary and its side effects.
type LeadService struct {
	leads    repository.LeadRepository
	projects repository.ProjectRepository
	notifier *LeadNotifier
	logger   *zap.Logger
}

func NewLeadService(leads repository.LeadRepository, projects repository.ProjectRepository, notifier *LeadNotifier, logger *zap.Logger) *LeadService {
	return &LeadService{
		leads:    leads,
		projects: projects,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitLead finds-or-creates the lead for (mobile, projectId). On a repeat
// submission only currently-empty name/email are filled from the input, the
// lead type always follows the latest intent, and the merge is recorded in
// the contact history.
func (s *LeadService) SubmitLead(ctx context.Context, in LeadInput) (*models.Lead, error) {
	if !mobilePattern.MatchString(in.Mobile) {
		return nil, ErrInvalidMobile
	}
	if _, err := s.projects.FindActiveByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	existing, err := s.leads.FindActiveByMobileAndProject(ctx, in.Mobile, in.ProjectID)
	if err == nil {
		return s.mergeLead(ctx, existing, in)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	lead := &models.Lead{
		ID:             primitive.NewObjectID(),
		Name:           in.Name,
		Email:          in.Email,
		Mobile:         in.Mobile,
		ProjectID:      in.ProjectID,
		ApartmentID:    in.ApartmentID,
		Source:         in.Source,
		LeadType:       in.LeadType,
		Status:         models.LeadStatusNew,
		Priority:       models.LeadPriorityMedium,
		ContactHistory: []models.ContactRecord{},
		Notes:          []models.LeadNote{},
		IPAddress:      in.IPAddress,
		UserAgent:      in.UserAgent,
		Referrer:       in.Referrer,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if lead.Source == "" {
		lead.Source = models.LeadSourceWebsite
	}
	if in.Message != "" {
		lead.Notes = append(lead.Notes, models.LeadNote{
			ID:      uuid.NewString(),
			Content: in.Message,
			AddedBy: "visitor",
			AddedAt: now,
		})
	}

	if err := s.leads.Insert(ctx, lead); err != nil {
		return nil, err
	}
	s.logger.Info("lead created",
		zap.String("leadId", lead.ID.Hex()),
		zap.String("projectId", lead.ProjectID.Hex()),
		zap.String("source", string(lead.Source)))
	s.notifier.NotifyNewLead(lead)
	return lead, nil
}

func (s *LeadService) mergeLead(ctx context.Context, lead *models.Lead, in LeadInput) (*models.Lead, error) {
	now := time.Now()

	if lead.Name == "" && in.Name != "" {
		lead.Name = in.Name
	}
	if lead.Email == "" && in.Email != "" {
		lead.Email = in.Email
	}
	if in.LeadType != "" {
		lead.LeadType = in.LeadType
	}
	if lead.ApartmentID == nil && in.ApartmentID != nil {
		lead.ApartmentID = in.ApartmentID
	}

	s.appendContact(lead, models.ContactRecord{
		Date:    now,
		Method:  models.ContactMethodSystem,
		Outcome: models.ContactOutcomeSuccessful,
		Notes:   "Repeat enquiry received, details merged into existing lead",
	})
	lead.UpdatedAt = now

	if err := s.leads.Replace(ctx, lead); err != nil {
		return nil, err
	}
	s.logger.Info("duplicate lead merged",
		zap.String("leadId", lead.ID.Hex()),
		zap.String("mobile", lead.Mobile))
	return lead, nil
}

// UpdateStatus moves a lead through the status vocabulary. Every transition is
// logged in the contact history. The first transition to converted stamps
// conversionDate; reaching interested or converted qualifies the lead, and
// qualification is never revoked.
func (s *LeadService) UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus models.LeadStatus, actorID string) (*models.Lead, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	lead, err := s.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.appendContact(lead, models.ContactRecord{
		Date:        now,
		Method:      models.ContactMethodSystem,
		Outcome:     models.ContactOutcomeSuccessful,
		ContactedBy: actorID,
		Notes:       fmt.Sprintf("Status changed from %s to %s", lead.Status, newStatus),
	})

	if newStatus == models.LeadStatusConverted && lead.ConversionDate == nil {
		converted := now
		lead.ConversionDate = &converted
	}
	if newStatus == models.LeadStatusInterested || newStatus == models.LeadStatusConverted {
		lead.IsQualified = true
	}

	lead.Status = newStatus
	lead.UpdatedAt = now

	if err := s.leads.Replace(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// AddContactHistory appends an interaction to the lead's audit log.
func (s *LeadService) AddContactHistory(ctx context.Context, id primitive.ObjectID, entry models.ContactRecord) (*models.Lead, error) {
	lead, err := s.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	s.appendContact(lead, entry)
	lead.UpdatedAt = time.Now()

	if err := s.leads.Replace(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// ScheduleFollowUp sets the follow-up date. Non-empty notes are recorded as a
// lead note; the status is not touched.
func (s *LeadService) ScheduleFollowUp(ctx context.Context, id primitive.ObjectID, date time.Time, notes, actorID string) (*models.Lead, error) {
	lead, err := s.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lead.FollowUpDate = &date
	if notes != "" {
		lead.Notes = append(lead.Notes, models.LeadNote{
			ID:      uuid.NewString(),
			Content: fmt.Sprintf("Follow-up scheduled for %s: %s", date.Format("2006-01-02"), notes),
			AddedBy: actorID,
			AddedAt: now,
		})
	}
	lead.UpdatedAt = now

	if err := s.leads.Replace(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// AddNote appends a free-form note.
func (s *LeadService) AddNote(ctx context.Context, id primitive.ObjectID, content, addedBy string, important bool) (*models.Lead, error) {
	lead, err := s.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lead.Notes = append(lead.Notes, models.LeadNote{
		ID:          uuid.NewString(),
		Content:     content,
		AddedBy:     addedBy,
		AddedAt:     now,
		IsImportant: important,
	})
	lead.UpdatedAt = now

	if err := s.leads.Replace(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// GetFollowUpLeads returns active leads due for a follow-up as of the given
// date, skipping leads already converted, lost or not interested.
func (s *LeadService) GetFollowUpLeads(ctx context.Context, asOf time.Time) ([]models.Lead, error) {
	return s.leads.FindFollowUpsDue(ctx, asOf)
}

func (s *LeadService) GetLead(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	return s.findLead(ctx, id)
}

func (s *LeadService) ListLeads(ctx context.Context, filter repository.LeadListFilter) ([]models.Lead, error) {
	return s.leads.List(ctx, filter)
}

func (s *LeadService) DeleteLead(ctx context.Context, id primitive.ObjectID) error {
	err := s.leads.SoftDelete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLeadNotFound
	}
	return err
}

func (s *LeadService) findLead(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

// appendContact keeps lastContactedAt pinned to the newest history entry.
func (s *LeadService) appendContact(lead *models.Lead, entry models.ContactRecord) {
	lead.ContactHistory = append(lead.ContactHistory, entry)
	contacted := entry.Date
	lead.LastContactedAt = &contacted
}
