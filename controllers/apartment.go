package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createApartmentRequest struct {
	ProjectID    string `json:"projectId" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	AreaSqFt     int    `json:"areaSqFt"`
	Price        int    `json:"price"`
	FloorPlanURL string `json:"floorPlanUrl"`
	TotalUnits   int    `json:"totalUnits" validate:"required,min=1"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func CreateApartment(inv *services.InventoryService, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createApartmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zap.L().Warn("Invalid request body", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
		if err != nil {
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}

		unit := models.ApartmentUnit{
			ProjectID:    projectID,
			Name:         req.Name,
			Bedrooms:     req.Bedrooms,
			Bathrooms:    req.Bathrooms,
			AreaSqFt:     req.AreaSqFt,
			Price:        req.Price,
			FloorPlanURL: req.FloorPlanURL,
			Availability: models.Availability{TotalUnits: req.TotalUnits},
		}

		if err := inv.CreateUnit(r.Context(), &unit); err != nil {
			respondServiceError(w, err)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusCreated, models.APIResponse{Success: true, Data: unit})
	}
}

func GetProjectApartments(inv *services.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(projectID)
		if err != nil {
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}

		units, err := inv.ListUnits(r.Context(), objID, false)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: units})
	}
}

func GetApartmentByID(inv *services.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
			return
		}

		unit, err := inv.GetUnit(r.Context(), objID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: unit})
	}
}

// UpdateApartment is the direct admin edit path. It decodes the payload over
// the stored record, so absent fields keep their values. Counter edits made
// here bypass the ledger preconditions.
func UpdateApartment(inv *services.InventoryService, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
			return
		}

		unit, err := inv.GetUnit(r.Context(), objID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		if err := json.NewDecoder(r.Body).Decode(unit); err != nil {
			zap.L().Warn("Invalid update data", zap.Error(err))
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}
		unit.ID = objID

		if err := inv.UpdateUnit(r.Context(), unit); err != nil {
			respondServiceError(w, err)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: unit})
	}
}

func DeleteApartment(inv *services.InventoryService, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
			return
		}

		if err := inv.DeleteUnit(r.Context(), objID); err != nil {
			respondServiceError(w, err)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Apartment deleted successfully"})
	}
}

func BookApartmentUnits(inv *services.InventoryService, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
			return
		}

		quantity, ok := decodeQuantity(w, r)
		if !ok {
			return
		}

		unit, err := inv.BookUnits(r.Context(), objID, quantity)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: unit.Availability})
	}
}

func ReleaseApartmentUnits(inv *services.InventoryService, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
			return
		}

		quantity, ok := decodeQuantity(w, r)
		if !ok {
			return
		}

		unit, err := inv.ReleaseUnits(r.Context(), objID, quantity)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: unit.Availability})
	}
}

// decodeQuantity reads an optional {"quantity": n} body, defaulting to 1.
func decodeQuantity(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req quantityRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return 0, false
		}
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	return req.Quantity, true
}
