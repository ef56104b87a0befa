package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func GetAllLeads(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := repository.LeadListFilter{
			Status:   models.LeadStatus(query.Get("status")),
			Source:   models.LeadSource(query.Get("source")),
			Priority: models.LeadPriority(query.Get("priority")),
		}
		if pid := query.Get("projectId"); pid != "" {
			objID, err := primitive.ObjectIDFromHex(pid)
			if err != nil {
				http.Error(w, "Invalid project ID", http.StatusBadRequest)
				return
			}
			filter.ProjectID = &objID
		}
		if q := query.Get("qualified"); q != "" {
			qualified, err := strconv.ParseBool(q)
			if err != nil {
				http.Error(w, "Invalid qualified value", http.StatusBadRequest)
				return
			}
			filter.Qualified = &qualified
		}
		if l := query.Get("limit"); l != "" {
			limit, err := strconv.ParseInt(l, 10, 64)
			if err != nil || limit < 1 {
				http.Error(w, "Invalid limit value", http.StatusBadRequest)
				return
			}
			filter.Limit = limit
		}

		leads, err := leadSvc.ListLeads(r.Context(), filter)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: leads})
	}
}

func GetLeadByID(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid lead ID", http.StatusBadRequest)
			return
		}

		lead, err := leadSvc.GetLead(r.Context(), objID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: lead})
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateLeadStatus(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			zap.L().Warn("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid lead ID", http.StatusBadRequest)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		lead, err := leadSvc.UpdateStatus(r.Context(), objID, models.LeadStatus(req.Status), userID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: lead})
	}
}

type followUpRequest struct {
	FollowUpDate string `json:"followUpDate" validate:"required"`
	Notes        string `json:"notes"`
}

func ScheduleLeadFollowUp(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			zap.L().Warn("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid lead ID", http.StatusBadRequest)
			return
		}

		var req followUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			date, err = time.Parse(time.RFC3339, req.FollowUpDate)
			if err != nil {
				http.Error(w, "Invalid followUpDate, expected YYYY-MM-DD or RFC3339", http.StatusBadRequest)
				return
			}
		}

		lead, err := leadSvc.ScheduleFollowUp(r.Context(), objID, date, req.Notes, userID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: lead})
	}
}

type addNoteRequest struct {
	Content     string `json:"content" validate:"required"`
	IsImportant bool   `json:"isImportant"`
}

func AddLeadNote(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			zap.L().Warn("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid lead ID", http.StatusBadRequest)
			return
		}

		var req addNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		lead, err := leadSvc.AddNote(r.Context(), objID, req.Content, userID, req.IsImportant)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, models.APIResponse{Success: true, Data: lead})
	}
}

type addContactRequest struct {
	Method  string `json:"method" validate:"required,oneof=call email sms site_visit system"`
	Outcome string `json:"outcome" validate:"omitempty,oneof=successful no_answer callback_requested"`
	Notes   string `json:"notes"`
	Date    string `json:"date"`
}

func AddLeadContact(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			zap.L().Warn("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid lead ID", http.StatusBadRequest)
			return
		}

		var req addContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		entry := models.ContactRecord{
			Method:      req.Method,
			Outcome:     req.Outcome,
			Notes:       req.Notes,
			ContactedBy: userID,
		}
		if req.Date != "" {
			date, err := time.Parse(time.RFC3339, req.Date)
			if err != nil {
				http.Error(w, "Invalid date, expected RFC3339", http.StatusBadRequest)
				return
			}
			entry.Date = date
		}
		if entry.Outcome == "" {
			entry.Outcome = models.ContactOutcomeSuccessful
		}

		lead, err := leadSvc.AddContactHistory(r.Context(), objID, entry)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, models.APIResponse{Success: true, Data: lead})
	}
}

func GetFollowUpDueLeads(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf := time.Now()
		if d := r.URL.Query().Get("date"); d != "" {
			parsed, err := time.Parse("2006-01-02", d)
			if err != nil {
				http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			// End of the requested day, so follow-ups scheduled anytime that
			// day are included.
			asOf = parsed.Add(24*time.Hour - time.Nanosecond)
		}

		leads, err := leadSvc.GetFollowUpLeads(r.Context(), asOf)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: leads})
	}
}

func DeleteLead(leadSvc *services.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid lead ID", http.StatusBadRequest)
			return
		}

		if err := leadSvc.DeleteLead(r.Context(), objID); err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Lead deleted successfully"})
	}
}
