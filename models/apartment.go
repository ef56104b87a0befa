package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability holds the inventory counters for one apartment configuration.
// Invariant after every ledger mutation: AvailableUnits + SoldUnits == TotalUnits
// and IsAvailable == (AvailableUnits > 0).
type Availability struct {
	TotalUnits     int  `bson:"totalUnits" json:"totalUnits"`
	AvailableUnits int  `bson:"availableUnits" json:"availableUnits"`
	SoldUnits      int  `bson:"soldUnits" json:"soldUnits"`
	IsAvailable    bool `bson:"isAvailable" json:"isAvailable"`
}

// ApartmentUnit is one sellable unit-type configuration within a project,
// e.g. the "2BHK" offering. Units are retired with IsActive, never deleted.
type ApartmentUnit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProjectID    primitive.ObjectID `bson:"projectId" json:"projectId"`
	Name         string             `bson:"name" json:"name"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	AreaSqFt     int                `bson:"areaSqFt" json:"areaSqFt"`
	Price        int                `bson:"price" json:"price"`
	FloorPlanURL string             `bson:"floorPlanUrl" json:"floorPlanUrl"`
	Availability Availability       `bson:"availability" json:"availability"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
