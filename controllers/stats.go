package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/config"
	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const statsCacheKey = "stats:summary"

type siteStats struct {
	TotalProjects     int64 `json:"totalProjects"`
	OngoingProjects   int64 `json:"ongoingProjects"`
	CompletedProjects int64 `json:"completedProjects"`
	UpcomingProjects  int64 `json:"upcomingProjects"`
	AvailableUnits    int64 `json:"availableUnits"`
	TotalLeads        int64 `json:"totalLeads"`
	ConvertedLeads    int64 `json:"convertedLeads"`
}

// GetStats serves the public statistics strip. Values come from the cached
// project rollups, so this never walks the apartments collection.
func GetStats(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cachedData, err := redisClient.Get(r.Context(), statsCacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			zap.L().Warn("Redis GET error", zap.String("key", statsCacheKey), zap.Error(err))
		}

		stats, err := computeStats(r)
		if err != nil {
			zap.L().Error("Error computing stats", zap.Error(err))
			http.Error(w, "Error computing stats", http.StatusInternalServerError)
			return
		}

		resultBytes, err := json.Marshal(stats)
		if err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if err := redisClient.Set(r.Context(), statsCacheKey, resultBytes, 10*time.Minute).Err(); err != nil {
			zap.L().Warn("Failed to cache stats", zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func computeStats(r *http.Request) (*siteStats, error) {
	ctx := r.Context()
	stats := &siteStats{}

	var err error
	if stats.TotalProjects, err = config.ProjectCollection.CountDocuments(ctx, bson.M{"isActive": true}); err != nil {
		return nil, err
	}
	if stats.OngoingProjects, err = config.ProjectCollection.CountDocuments(ctx, bson.M{"isActive": true, "status": models.ProjectStatusOngoing}); err != nil {
		return nil, err
	}
	if stats.CompletedProjects, err = config.ProjectCollection.CountDocuments(ctx, bson.M{"isActive": true, "status": models.ProjectStatusCompleted}); err != nil {
		return nil, err
	}
	if stats.UpcomingProjects, err = config.ProjectCollection.CountDocuments(ctx, bson.M{"isActive": true, "status": models.ProjectStatusUpcoming}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$availableUnits"},
		}}},
	}
	cursor, err := config.ProjectCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var totals []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		stats.AvailableUnits = totals[0].Total
	}

	if stats.TotalLeads, err = config.LeadCollection.CountDocuments(ctx, bson.M{"isActive": true}); err != nil {
		return nil, err
	}
	if stats.ConvertedLeads, err = config.LeadCollection.CountDocuments(ctx, bson.M{"isActive": true, "status": models.LeadStatusConverted}); err != nil {
		return nil, err
	}

	return stats, nil
}
