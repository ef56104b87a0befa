package repository

import (
	"context"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ApartmentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ApartmentUnit, error)
	Insert(ctx context.Context, unit *models.ApartmentUnit) error
	Replace(ctx context.Context, unit *models.ApartmentUnit) error
	// ReplaceAvailability writes next only if the stored counters still equal
	// prev, closing the read-modify-write race on bookings. A lost race
	// returns ErrConflict; a vanished unit returns ErrNotFound.
	ReplaceAvailability(ctx context.Context, id primitive.ObjectID, prev, next models.Availability) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	// CountAvailableActive counts the active unit records under a project that
	// are flagged available. Feeds the project rollup.
	CountAvailableActive(ctx context.Context, projectID primitive.ObjectID) (int, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID, includeInactive bool) ([]models.ApartmentUnit, error)
}

type mongoApartmentRepository struct {
	coll *mongo.Collection
}

func NewApartmentRepository(coll *mongo.Collection) ApartmentRepository {
	return &mongoApartmentRepository{coll: coll}
}

func (r *mongoApartmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ApartmentUnit, error) {
	var unit models.ApartmentUnit
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&unit)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *mongoApartmentRepository) Insert(ctx context.Context, unit *models.ApartmentUnit) error {
	_, err := r.coll.InsertOne(ctx, unit)
	return err
}

func (r *mongoApartmentRepository) Replace(ctx context.Context, unit *models.ApartmentUnit) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": unit.ID}, unit)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoApartmentRepository) ReplaceAvailability(ctx context.Context, id primitive.ObjectID, prev, next models.Availability) error {
	filter := bson.M{
		"_id":                         id,
		"availability.availableUnits": prev.AvailableUnits,
		"availability.soldUnits":      prev.SoldUnits,
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"availability": next, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (r *mongoApartmentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoApartmentRepository) CountAvailableActive(ctx context.Context, projectID primitive.ObjectID) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"projectId":                projectID,
		"isActive":                 true,
		"availability.isAvailable": true,
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *mongoApartmentRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID, includeInactive bool) ([]models.ApartmentUnit, error) {
	filter := bson.M{"projectId": projectID}
	if !includeInactive {
		filter["isActive"] = true
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var units []models.ApartmentUnit
	if err := cursor.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}
