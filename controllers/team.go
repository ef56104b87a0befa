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

func GetTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		findOptions := options.Find().SetSort(bson.M{"displayOrder": 1})
		cursor, err := config.TeamCollection.Find(r.Context(), bson.M{"isActive": true}, findOptions)
		if err != nil {
			zap.L().Error("Error fetching team members", zap.Error(err))
			http.Error(w, "Error fetching team members", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var members []models.TeamMember
		if err := cursor.All(r.Context(), &members); err != nil {
			zap.L().Error("Error decoding team members", zap.Error(err))
			http.Error(w, "Error decoding team members", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: members})
	}
}

func CreateTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var member models.TeamMember
		if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
			zap.L().Warn("Invalid request body", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if member.Name == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}

		now := time.Now()
		member.ID = primitive.NewObjectID()
		member.IsActive = true
		member.CreatedAt = now
		member.UpdatedAt = now

		if _, err := config.TeamCollection.InsertOne(r.Context(), member); err != nil {
			zap.L().Error("Insert failed", zap.Error(err))
			http.Error(w, "Failed to create team member", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusCreated, models.APIResponse{Success: true, Data: member})
	}
}

func UpdateTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid team member ID", http.StatusBadRequest)
			return
		}

		var updateData map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		delete(updateData, "_id")
		delete(updateData, "createdAt")
		updateData["updatedAt"] = time.Now()

		res, err := config.TeamCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{"$set": updateData})
		if err != nil {
			zap.L().Error("Update failed", zap.Error(err))
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Team member not found", http.StatusNotFound)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Team member updated successfully"})
	}
}

func DeleteTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid team member ID", http.StatusBadRequest)
			return
		}

		res, err := config.TeamCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
		})
		if err != nil {
			zap.L().Error("Delete failed", zap.Error(err))
			http.Error(w, "Delete failed", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Team member not found", http.StatusNotFound)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Team member deleted successfully"})
	}
}
