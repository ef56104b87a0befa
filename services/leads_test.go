package services

import (
	"context"
	"testing"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newLeadFixture() (*LeadService, *fakeLeadRepo, *models.Project) {
	leads := newFakeLeadRepo()
	projects := newFakeProjectRepo()
	project := &models.Project{Name: "Crestline Heights", IsActive: true}
	projects.add(project)
	svc := NewLeadService(leads, projects, nil, zap.NewNop())
	return svc, leads, project
}

func seedLead(t *testing.T, svc *LeadService, project *models.Project, mobile string) *models.Lead {
	t.Helper()
	lead, err := svc.SubmitLead(context.Background(), LeadInput{
		Mobile:    mobile,
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	return lead
}

func TestSubmitLeadDedupMerge(t *testing.T) {
	svc, leads, project := newLeadFixture()
	ctx := context.Background()

	first, err := svc.SubmitLead(ctx, LeadInput{
		Mobile: "9876543210", ProjectID: project.ID, Name: "Asha",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", first.Name)
	assert.Empty(t, first.ContactHistory)

	second, err := svc.SubmitLead(ctx, LeadInput{
		Mobile: "9876543210", ProjectID: project.ID, Email: "a@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha", second.Name)
	assert.Equal(t, "a@x.com", second.Email)
	require.Len(t, second.ContactHistory, 1)
	assert.Equal(t, models.ContactMethodSystem, second.ContactHistory[0].Method)

	third, err := svc.SubmitLead(ctx, LeadInput{
		Mobile: "9876543210", ProjectID: project.ID, Name: "Different",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
	assert.Equal(t, "Asha", third.Name)
	assert.Equal(t, "a@x.com", third.Email)
	require.Len(t, third.ContactHistory, 2)

	assert.Len(t, leads.leads, 1)
	require.NotNil(t, third.LastContactedAt)
	assert.Equal(t, third.ContactHistory[1].Date, *third.LastContactedAt)
}

func TestSubmitLeadSameMobileDifferentProject(t *testing.T) {
	svc, leads, project := newLeadFixture()
	other := &models.Project{Name: "Crestline Meadows", IsActive: true}
	svc.projects.(*fakeProjectRepo).add(other)
	ctx := context.Background()

	_, err := svc.SubmitLead(ctx, LeadInput{Mobile: "9876543210", ProjectID: project.ID})
	require.NoError(t, err)
	_, err = svc.SubmitLead(ctx, LeadInput{Mobile: "9876543210", ProjectID: other.ID})
	require.NoError(t, err)

	assert.Len(t, leads.leads, 2)
}

func TestSubmitLeadProjectNotFound(t *testing.T) {
	svc, leads, _ := newLeadFixture()

	_, err := svc.SubmitLead(context.Background(), LeadInput{
		Mobile:    "9876543210",
		ProjectID: primitive.NewObjectID(),
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.Empty(t, leads.leads)
}

func TestSubmitLeadInvalidMobile(t *testing.T) {
	svc, leads, project := newLeadFixture()

	for _, mobile := range []string{"", "12345", "98765432101", "98765abcde"} {
		_, err := svc.SubmitLead(context.Background(), LeadInput{
			Mobile:    mobile,
			ProjectID: project.ID,
		})
		assert.ErrorIs(t, err, ErrInvalidMobile)
	}
	assert.Empty(t, leads.leads)
}

func TestSubmitLeadDefaults(t *testing.T) {
	svc, _, project := newLeadFixture()

	lead, err := svc.SubmitLead(context.Background(), LeadInput{
		Mobile:    "9000000001",
		ProjectID: project.ID,
		Message:   "Interested in a corner unit",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, models.LeadPriorityMedium, lead.Priority)
	assert.Equal(t, models.LeadSourceWebsite, lead.Source)
	assert.False(t, lead.IsQualified)
	assert.True(t, lead.IsActive)
	require.Len(t, lead.Notes, 1)
	assert.Equal(t, "Interested in a corner unit", lead.Notes[0].Content)
	assert.NotEmpty(t, lead.Notes[0].ID)
}

func TestSubmitLeadTypeFollowsLatestIntent(t *testing.T) {
	svc, _, project := newLeadFixture()
	ctx := context.Background()

	_, err := svc.SubmitLead(ctx, LeadInput{
		Mobile: "9000000002", ProjectID: project.ID, LeadType: models.LeadTypeEnquiry,
	})
	require.NoError(t, err)

	merged, err := svc.SubmitLead(ctx, LeadInput{
		Mobile: "9000000002", ProjectID: project.ID, LeadType: models.LeadTypeSiteVisit,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeadTypeSiteVisit, merged.LeadType)
}

func TestUpdateStatusRecordsTransition(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000003")

	updated, err := svc.UpdateStatus(context.Background(), lead.ID, models.LeadStatusContacted, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, models.LeadStatusContacted, updated.Status)
	require.Len(t, updated.ContactHistory, 1)
	entry := updated.ContactHistory[0]
	assert.Equal(t, models.ContactMethodSystem, entry.Method)
	assert.Equal(t, models.ContactOutcomeSuccessful, entry.Outcome)
	assert.Equal(t, "admin-1", entry.ContactedBy)
	assert.Contains(t, entry.Notes, "new")
	assert.Contains(t, entry.Notes, "contacted")
	require.NotNil(t, updated.LastContactedAt)
	assert.Equal(t, entry.Date, *updated.LastContactedAt)
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000004")

	_, err := svc.UpdateStatus(context.Background(), lead.ID, "archived", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusUnknownLead(t *testing.T) {
	svc, _, _ := newLeadFixture()

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.LeadStatusContacted, "admin-1")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestConversionDateStampedOnce(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000005")
	ctx := context.Background()

	converted, err := svc.UpdateStatus(ctx, lead.ID, models.LeadStatusConverted, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, converted.ConversionDate)
	stamped := *converted.ConversionDate

	_, err = svc.UpdateStatus(ctx, lead.ID, models.LeadStatusInterested, "admin-1")
	require.NoError(t, err)
	reconverted, err := svc.UpdateStatus(ctx, lead.ID, models.LeadStatusConverted, "admin-1")
	require.NoError(t, err)

	require.NotNil(t, reconverted.ConversionDate)
	assert.Equal(t, stamped, *reconverted.ConversionDate)
}

func TestQualificationIsMonotonic(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000006")
	ctx := context.Background()

	qualified, err := svc.UpdateStatus(ctx, lead.ID, models.LeadStatusInterested, "admin-1")
	require.NoError(t, err)
	assert.True(t, qualified.IsQualified)

	demoted, err := svc.UpdateStatus(ctx, lead.ID, models.LeadStatusNotInterested, "admin-1")
	require.NoError(t, err)
	assert.True(t, demoted.IsQualified)
}

func TestAddContactHistoryUpdatesLastContacted(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000007")

	when := time.Date(2026, 8, 20, 11, 30, 0, 0, time.UTC)
	updated, err := svc.AddContactHistory(context.Background(), lead.ID, models.ContactRecord{
		Date:    when,
		Method:  models.ContactMethodCall,
		Outcome: models.ContactOutcomeNoAnswer,
		Notes:   "Tried morning call",
	})
	require.NoError(t, err)

	require.Len(t, updated.ContactHistory, 1)
	require.NotNil(t, updated.LastContactedAt)
	assert.Equal(t, when, *updated.LastContactedAt)
}

func TestScheduleFollowUp(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000008")

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.ScheduleFollowUp(context.Background(), lead.ID, date, "Wants pricing for 3BHK", "admin-2")
	require.NoError(t, err)

	require.NotNil(t, updated.FollowUpDate)
	assert.Equal(t, date, *updated.FollowUpDate)
	assert.Equal(t, models.LeadStatusNew, updated.Status)
	require.Len(t, updated.Notes, 1)
	assert.Contains(t, updated.Notes[0].Content, "2026-09-15")
	assert.Contains(t, updated.Notes[0].Content, "Wants pricing for 3BHK")
	assert.Equal(t, "admin-2", updated.Notes[0].AddedBy)
}

func TestScheduleFollowUpWithoutNotes(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000009")

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.ScheduleFollowUp(context.Background(), lead.ID, date, "", "admin-2")
	require.NoError(t, err)
	assert.Empty(t, updated.Notes)
}

func TestGetFollowUpLeads(t *testing.T) {
	svc, _, project := newLeadFixture()
	ctx := context.Background()
	asOf := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)

	due := seedLead(t, svc, project, "9000000010")
	_, err := svc.ScheduleFollowUp(ctx, due.ID, asOf.Add(-48*time.Hour), "", "admin-1")
	require.NoError(t, err)

	future := seedLead(t, svc, project, "9000000011")
	_, err = svc.ScheduleFollowUp(ctx, future.ID, asOf.Add(72*time.Hour), "", "admin-1")
	require.NoError(t, err)

	closed := seedLead(t, svc, project, "9000000012")
	_, err = svc.ScheduleFollowUp(ctx, closed.ID, asOf.Add(-24*time.Hour), "", "admin-1")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, closed.ID, models.LeadStatusLost, "admin-1")
	require.NoError(t, err)

	leads, err := svc.GetFollowUpLeads(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, due.ID, leads[0].ID)
}

func TestAddNote(t *testing.T) {
	svc, _, project := newLeadFixture()
	lead := seedLead(t, svc, project, "9000000013")

	updated, err := svc.AddNote(context.Background(), lead.ID, "Negotiating price", "admin-3", true)
	require.NoError(t, err)

	require.Len(t, updated.Notes, 1)
	note := updated.Notes[0]
	assert.Equal(t, "Negotiating price", note.Content)
	assert.Equal(t, "admin-3", note.AddedBy)
	assert.True(t, note.IsImportant)
	assert.NotEmpty(t, note.ID)
}

func TestDeleteLeadAllowsResubmission(t *testing.T) {
	svc, leads, project := newLeadFixture()
	ctx := context.Background()

	lead := seedLead(t, svc, project, "9000000014")
	require.NoError(t, svc.DeleteLead(ctx, lead.ID))

	fresh, err := svc.SubmitLead(ctx, LeadInput{Mobile: "9000000014", ProjectID: project.ID})
	require.NoError(t, err)
	assert.NotEqual(t, lead.ID, fresh.ID)
	assert.Len(t, leads.leads, 2)
}
