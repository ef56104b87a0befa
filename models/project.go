package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectStatusUpcoming  ProjectStatus = "upcoming"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project is a marketed development. AvailableUnits is a cached rollup of the
// project's apartment records currently flagged available; it is maintained by
// the inventory service, never edited directly.
type Project struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Slug           string             `bson:"slug" json:"slug"`
	Description    string             `bson:"description" json:"description"`
	Location       string             `bson:"location" json:"location"`
	City           string             `bson:"city" json:"city"`
	State          string             `bson:"state" json:"state"`
	Status         ProjectStatus      `bson:"status" json:"status"`
	PriceRange     string             `bson:"priceRange" json:"priceRange"`
	Amenities      []string           `bson:"amenities" json:"amenities"`
	BrochureURL    string             `bson:"brochureUrl" json:"brochureUrl"`
	CoverImage     string             `bson:"coverImage" json:"coverImage"`
	AvailableUnits int                `bson:"availableUnits" json:"availableUnits"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedBy      string             `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
