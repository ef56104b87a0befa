package repository

import (
	"context"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectRepository interface {
	// FindActiveByID returns the project if it exists and is not retired.
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	// SetAvailableUnits writes the cached rollup count. This is an internal
	// cache write and deliberately skips the full-document validation path.
	SetAvailableUnits(ctx context.Context, id primitive.ObjectID, count int) error
}

type mongoProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(coll *mongo.Collection) ProjectRepository {
	return &mongoProjectRepository{coll: coll}
}

func (r *mongoProjectRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *mongoProjectRepository) SetAvailableUnits(ctx context.Context, id primitive.ObjectID, count int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"availableUnits": count, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
