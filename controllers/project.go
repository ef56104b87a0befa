package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/config"
	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const projectCacheTTL = 10 * time.Minute

type createProjectRequest struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Status      string   `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
	PriceRange  string   `json:"priceRange"`
	Amenities   []string `json:"amenities"`
	BrochureURL string   `json:"brochureUrl"`
	CoverImage  string   `json:"coverImage"`
}

func CreateProject(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			zap.L().Warn("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zap.L().Warn("Invalid request body", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		status := models.ProjectStatus(req.Status)
		if status == "" {
			status = models.ProjectStatusUpcoming
		}

		now := time.Now()
		project := models.Project{
			ID:          primitive.NewObjectID(),
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Location:    req.Location,
			City:        req.City,
			State:       req.State,
			Status:      status,
			PriceRange:  req.PriceRange,
			Amenities:   req.Amenities,
			BrochureURL: req.BrochureURL,
			CoverImage:  req.CoverImage,
			IsActive:    true,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := config.ProjectCollection.InsertOne(r.Context(), project); err != nil {
			zap.L().Error("Insert failed", zap.Error(err))
			http.Error(w, "Failed to create project", http.StatusInternalServerError)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusCreated, models.APIResponse{Success: true, Data: project})
	}
}

func GetAllProjects(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cacheKey := generateCacheKey("projects", query)

		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			zap.L().Warn("Redis GET error", zap.String("key", cacheKey), zap.Error(err))
		}

		filter := bson.M{"isActive": true}
		if status := query.Get("status"); status != "" {
			filter["status"] = status
		}
		if city := query.Get("city"); city != "" {
			filter["city"] = city
		}
		if search := query.Get("search"); search != "" {
			filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}
		}

		findOptions := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
		cursor, err := config.ProjectCollection.Find(r.Context(), filter, findOptions)
		if err != nil {
			zap.L().Error("Error fetching projects", zap.Error(err))
			http.Error(w, "Error fetching projects", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var projects []models.Project
		if err := cursor.All(r.Context(), &projects); err != nil {
			zap.L().Error("Error decoding projects", zap.Error(err))
			http.Error(w, "Error decoding projects", http.StatusInternalServerError)
			return
		}

		resultBytes, err := json.Marshal(projects)
		if err != nil {
			zap.L().Error("Failed to serialize projects", zap.Error(err))
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if err := redisClient.Set(r.Context(), cacheKey, resultBytes, projectCacheTTL).Err(); err != nil {
			zap.L().Warn("Failed to cache response", zap.String("key", cacheKey), zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func GetProjectByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(projectID)
		if err != nil {
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}

		var project models.Project
		err = config.ProjectCollection.FindOne(r.Context(), bson.M{"_id": objID, "isActive": true}).Decode(&project)
		if err != nil {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Data: project})
	}
}

func UpdateProject(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(projectID)
		if err != nil {
			zap.L().Warn("Invalid project ID", zap.String("id", projectID), zap.Error(err))
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}

		var updateData map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
			zap.L().Warn("Invalid update data", zap.Error(err))
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		delete(updateData, "_id")
		delete(updateData, "createdBy")
		delete(updateData, "createdAt")
		// availableUnits is owned by the inventory rollup, never by edits.
		delete(updateData, "availableUnits")
		updateData["updatedAt"] = time.Now()

		res, err := config.ProjectCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{"$set": updateData})
		if err != nil {
			zap.L().Error("Update failed", zap.String("id", projectID), zap.Error(err))
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Project updated successfully"})
	}
}

func DeleteProject(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(projectID)
		if err != nil {
			zap.L().Warn("Invalid project ID", zap.String("id", projectID), zap.Error(err))
			http.Error(w, "Invalid project ID", http.StatusBadRequest)
			return
		}

		res, err := config.ProjectCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
		})
		if err != nil {
			zap.L().Error("Delete failed", zap.String("id", projectID), zap.Error(err))
			http.Error(w, "Delete failed", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}

		go func() {
			deleteProjectCache(redisClient)
		}()

		respondJSON(w, http.StatusOK, models.APIResponse{Success: true, Message: "Project deleted successfully"})
	}
}

// deleteProjectCache drops every cached project listing and the stats summary.
func deleteProjectCache(redisClient *redis.Client) {
	for _, pattern := range []string{"projects*", "stats*"} {
		iter := redisClient.Scan(config.Ctx, 0, pattern, 0).Iterator()
		for iter.Next(config.Ctx) {
			if err := redisClient.Del(config.Ctx, iter.Val()).Err(); err != nil {
				zap.L().Warn("Failed to delete cache key", zap.String("key", iter.Val()), zap.Error(err))
			}
		}
		if err := iter.Err(); err != nil {
			zap.L().Warn("Cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
