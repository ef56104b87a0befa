package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var leadExportHeader = []string{
	"Name",
	"Mobile",
	"Email",
	"Project ID",
	"Status",
	"Priority",
	"Source",
	"Lead Type",
	"Qualified",
	"Conversion Date",
	"Follow-up Date",
	"Last Contacted",
	"Created At",
}

// buildLeadsWorkbook renders leads into a single-sheet Excel workbook.
func buildLeadsWorkbook(leads []models.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Leads"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &leadExportHeader); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(leadExportHeader), 1)
		f.SetCellStyle(sheetName, "A1", endCell, headerStyle)
	}

	formatDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}

	for i, lead := range leads {
		row := []interface{}{
			lead.Name,
			lead.Mobile,
			lead.Email,
			lead.ProjectID.Hex(),
			string(lead.Status),
			string(lead.Priority),
			string(lead.Source),
			string(lead.LeadType),
			lead.IsQualified,
			formatDate(lead.ConversionDate),
			formatDate(lead.FollowUpDate),
			formatDate(lead.LastContactedAt),
			lead.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportLeads streams every active lead as an .xlsx attachment.
func ExportLeads(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := leadSvc.ListLeads(r.Context(), repository.LeadListFilter{})
		if err != nil {
			respondServiceError(w, err)
			return
		}

		data, err := buildLeadsWorkbook(leads)
		if err != nil {
			zap.L().Error("Failed to build leads workbook", zap.Error(err))
			http.Error(w, "Failed to build export", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("leads_%s.xlsx", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(data)
	}
}
