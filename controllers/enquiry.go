package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-dev/realty_marketing_system/backend/config"
	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type enquiryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Mobile      string `json:"mobile" validate:"required,len=10,numeric"`
	ProjectID   string `json:"projectId" validate:"required"`
	ApartmentID string `json:"apartmentId"`
	LeadType    string `json:"leadType" validate:"omitempty,oneof=enquiry site_visit brochure callback"`
	Message     string `json:"message"`
}

func (req *enquiryRequest) toLeadInput(r *http.Request) (services.LeadInput, error) {
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return services.LeadInput{}, err
	}

	in := services.LeadInput{
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		ProjectID: projectID,
		LeadType:  models.LeadType(req.LeadType),
		Message:   req.Message,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
	if req.ApartmentID != "" {
		if apartmentID, err := primitive.ObjectIDFromHex(req.ApartmentID); err == nil {
			in.ApartmentID = &apartmentID
		}
	}
	return in, nil
}

// SubmitEnquiry handles the public contact form. Repeat submissions for the
// same mobile and project land on the existing lead instead of a new one.
func SubmitEnquiry(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enquiryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zap.L().Warn("Invalid enquiry payload", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in, err := req.toLeadInput(r)
		if err != nil {
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}
		in.Source = models.LeadSourceWebsite

		lead, err := leadSvc.SubmitLead(r.Context(), in)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "Thank you for your enquiry, our team will reach out shortly",
			Data:    lead,
		})
	}
}

type brochureResponse struct {
	DownloadToken string `json:"downloadToken"`
	BrochureURL   string `json:"brochureUrl"`
}

// DownloadBrochure is the brochure-download funnel: it captures the visitor as
// a lead and hands back the project's brochure link with a one-off token.
func DownloadBrochure(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enquiryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zap.L().Warn("Invalid brochure payload", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in, err := req.toLeadInput(r)
		if err != nil {
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}
		in.Source = models.LeadSourceBrochure
		if in.LeadType == "" {
			in.LeadType = models.LeadTypeBrochure
		}

		if _, err := leadSvc.SubmitLead(r.Context(), in); err != nil {
			respondServiceError(w, err)
			return
		}

		var project models.Project
		if err := config.ProjectCollection.FindOne(r.Context(), bson.M{"_id": in.ProjectID}).Decode(&project); err != nil {
			zap.L().Error("Failed to load project for brochure", zap.Error(err))
			http.Error(w, "Failed to load brochure", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Data: brochureResponse{
				DownloadToken: uuid.NewString(),
				BrochureURL:   project.BrochureURL,
			},
		})
	}
}
