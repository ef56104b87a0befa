package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/config"
	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func GetMilestones() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		findOptions := options.Find().SetSort(bson.M{"date": 1})
		cursor, err := config.MilestoneCollection.Find(r.Context(), bson.M{"isActive": true}, findOptions)
		if err != nil {
			zap.L().Error("Error fetching milestones", zap.Error(err))
			http.Error(w, "Error fetching milestones", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var milestones []models.Milestone
		if err := cursor.All(r.Context(), &milestones); err != nil {
			zap.L().Error("Error decoding milestones", zap.Error(err))
			http.Error(w, "Error decoding milestones", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: milestones})
	}
}

func CreateMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var milestone models.Milestone
		if err := json.NewDecoder(r.Body).Decode(&milestone); err != nil {
			zap.L().Warn("Invalid request body", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if milestone.Title == "" {
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}

		now := time.Now()
		milestone.ID = primitive.NewObjectID()
		milestone.IsActive = true
		milestone.CreatedAt = now
		milestone.UpdatedAt = now
		if milestone.Date.IsZero() {
			milestone.Date = now
		}

		if _, err := config.MilestoneCollection.InsertOne(r.Context(), milestone); err != nil {
			zap.L().Error("Insert failed", zap.Error(err))
			http.Error(w, "Failed to create milestone", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusCreated, models.APIResponse{Success: true, Data: milestone})
	}
}

func UpdateMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid milestone ID", http.StatusBadRequest)
			return
		}

		var updateData map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		delete(updateData, "_id")
		delete(updateData, "createdAt")
		if d, ok := updateData["date"].(string); ok {
			if t, err := time.Parse(time.RFC3339, d); err == nil {
				updateData["date"] = t
			}
		}
		updateData["updatedAt"] = time.Now()

		res, err := config.MilestoneCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{"$set": updateData})
		if err != nil {
			zap.L().Error("Update failed", zap.Error(err))
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Milestone not found", http.StatusNotFound)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Milestone updated successfully"})
	}
}

func DeleteMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid milestone ID", http.StatusBadRequest)
			return
		}

		res, err := config.MilestoneCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
		})
		if err != nil {
			zap.L().Error("Delete failed", zap.Error(err))
			http.Error(w, "Delete failed", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Milestone not found", http.StatusNotFound)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Milestone deleted successfully"})
	}
}
