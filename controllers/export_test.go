package controllers

import (
	"bytes"
	"testing"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildLeadsWorkbook(t *testing.T) {
	converted := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	leads := []models.Lead{
		{
			ID:             primitive.NewObjectID(),
			Name:           "Asha",
			Mobile:         "9876543210",
			Email:          "a@x.com",
			ProjectID:      primitive.NewObjectID(),
			Status:         models.LeadStatusConverted,
			Priority:       models.LeadPriorityHigh,
			Source:         models.LeadSourceWebsite,
			LeadType:       models.LeadTypeEnquiry,
			IsQualified:    true,
			ConversionDate: &converted,
			CreatedAt:      time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        primitive.NewObjectID(),
			Mobile:    "9000000001",
			ProjectID: primitive.NewObjectID(),
			Status:    models.LeadStatusNew,
			Priority:  models.LeadPriorityMedium,
			Source:    models.LeadSourceBrochure,
			CreatedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	data, err := buildLeadsWorkbook(leads)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Leads", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	name, err := f.GetCellValue("Leads", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)

	mobile, err := f.GetCellValue("Leads", "B3")
	require.NoError(t, err)
	assert.Equal(t, "9000000001", mobile)

	status, err := f.GetCellValue("Leads", "E2")
	require.NoError(t, err)
	assert.Equal(t, "converted", status)

	conversion, err := f.GetCellValue("Leads", "J3")
	require.NoError(t, err)
	assert.Empty(t, conversion)
}
