package repository

import (
	"context"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeadListFilter narrows admin lead listings. Zero values mean "any".
type LeadListFilter struct {
	Status    models.LeadStatus
	Source    models.LeadSource
	Priority  models.LeadPriority
	ProjectID *primitive.ObjectID
	Qualified *bool
	Limit     int64
}

type LeadRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error)
	// FindActiveByMobileAndProject resolves the dedup key: at most one active
	// lead exists per (mobile, projectId) pair.
	FindActiveByMobileAndProject(ctx context.Context, mobile string, projectID primitive.ObjectID) (*models.Lead, error)
	Insert(ctx context.Context, lead *models.Lead) error
	Replace(ctx context.Context, lead *models.Lead) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter LeadListFilter) ([]models.Lead, error)
	// FindFollowUpsDue returns active leads whose follow-up date has passed and
	// whose status still warrants chasing.
	FindFollowUpsDue(ctx context.Context, asOf time.Time) ([]models.Lead, error)
}

type mongoLeadRepository struct {
	coll *mongo.Collection
}

func NewLeadRepository(coll *mongo.Collection) LeadRepository {
	return &mongoLeadRepository{coll: coll}
}

func (r *mongoLeadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	var lead models.Lead
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *mongoLeadRepository) FindActiveByMobileAndProject(ctx context.Context, mobile string, projectID primitive.ObjectID) (*models.Lead, error) {
	var lead models.Lead
	err := r.coll.FindOne(ctx, bson.M{
		"mobile":    mobile,
		"projectId": projectID,
		"isActive":  true,
	}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *mongoLeadRepository) Insert(ctx context.Context, lead *models.Lead) error {
	_, err := r.coll.InsertOne(ctx, lead)
	return err
}

func (r *mongoLeadRepository) Replace(ctx context.Context, lead *models.Lead) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoLeadRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
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

func (r *mongoLeadRepository) List(ctx context.Context, filter LeadListFilter) ([]models.Lead, error) {
	query := bson.M{"isActive": true}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Source != "" {
		query["source"] = filter.Source
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.ProjectID != nil {
		query["projectId"] = *filter.ProjectID
	}
	if filter.Qualified != nil {
		query["isQualified"] = *filter.Qualified
	}

	findOptions := options.Find().SetSort(bson.M{"createdAt": -1})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := r.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *mongoLeadRepository) FindFollowUpsDue(ctx context.Context, asOf time.Time) ([]models.Lead, error) {
	query := bson.M{
		"isActive":     true,
		"followUpDate": bson.M{"$ne": nil, "$lte": asOf},
		"status": bson.M{"$nin": []models.LeadStatus{
			models.LeadStatusConverted,
			models.LeadStatusLost,
			models.LeadStatusNotInterested,
		}},
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.M{"followUpDate": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}
