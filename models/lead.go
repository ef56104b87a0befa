package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadSource string
type LeadType string
type LeadStatus string
type LeadPriority string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceBrochure LeadSource = "brochure_download"
	LeadSourcePhone    LeadSource = "phone"
	LeadSourceWalkIn   LeadSource = "walk_in"
	LeadSourceReferral LeadSource = "referral"

	LeadTypeEnquiry   LeadType = "enquiry"
	LeadTypeSiteVisit LeadType = "site_visit"
	LeadTypeBrochure  LeadType = "brochure"
	LeadTypeCallback  LeadType = "callback"

	LeadStatusNew           LeadStatus = "new"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusQualified     LeadStatus = "qualified"
	LeadStatusInterested    LeadStatus = "interested"
	LeadStatusNotInterested LeadStatus = "not_interested"
	LeadStatusConverted     LeadStatus = "converted"
	LeadStatusLost          LeadStatus = "lost"

	LeadPriorityLow    LeadPriority = "low"
	LeadPriorityMedium LeadPriority = "medium"
	LeadPriorityHigh   LeadPriority = "high"

	ContactMethodCall      = "call"
	ContactMethodEmail     = "email"
	ContactMethodSMS       = "sms"
	ContactMethodSiteVisit = "site_visit"
	ContactMethodSystem    = "system"

	ContactOutcomeSuccessful = "successful"
	ContactOutcomeNoAnswer   = "no_answer"
	ContactOutcomeCallback   = "callback_requested"
)

// Valid reports whether s belongs to the lead status vocabulary.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusInterested, LeadStatusNotInterested,
		LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// ContactRecord is one entry in a lead's append-only contact log.
type ContactRecord struct {
	Date        time.Time `bson:"date" json:"date"`
	Method      string    `bson:"method" json:"method"`
	Notes       string    `bson:"notes" json:"notes"`
	ContactedBy string    `bson:"contactedBy,omitempty" json:"contactedBy,omitempty"`
	Outcome     string    `bson:"outcome" json:"outcome"`
}

// LeadNote is a free-form annotation. Entries are only ever appended.
type LeadNote struct {
	ID          string    `bson:"id" json:"id"`
	Content     string    `bson:"content" json:"content"`
	AddedBy     string    `bson:"addedBy,omitempty" json:"addedBy,omitempty"`
	AddedAt     time.Time `bson:"addedAt" json:"addedAt"`
	IsImportant bool      `bson:"isImportant" json:"isImportant"`
}

// Lead is a prospect's enquiry record. At most one active lead exists per
// (mobile, projectId) pair; repeat submissions merge into the existing record.
type Lead struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name            string              `bson:"name,omitempty" json:"name,omitempty"`
	Email           string              `bson:"email,omitempty" json:"email,omitempty"`
	Mobile          string              `bson:"mobile" json:"mobile"`
	ProjectID       primitive.ObjectID  `bson:"projectId" json:"projectId"`
	ApartmentID     *primitive.ObjectID `bson:"apartmentId,omitempty" json:"apartmentId,omitempty"`
	Source          LeadSource          `bson:"source" json:"source"`
	LeadType        LeadType            `bson:"leadType,omitempty" json:"leadType,omitempty"`
	Status          LeadStatus          `bson:"status" json:"status"`
	Priority        LeadPriority        `bson:"priority" json:"priority"`
	IsQualified     bool                `bson:"isQualified" json:"isQualified"`
	ConversionDate  *time.Time          `bson:"conversionDate,omitempty" json:"conversionDate,omitempty"`
	FollowUpDate    *time.Time          `bson:"followUpDate,omitempty" json:"followUpDate,omitempty"`
	LastContactedAt *time.Time          `bson:"lastContactedAt,omitempty" json:"lastContactedAt,omitempty"`
	ContactHistory  []ContactRecord     `bson:"contactHistory" json:"contactHistory"`
	Notes           []LeadNote          `bson:"notes" json:"notes"`
	IPAddress       string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent       string              `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Referrer        string              `bson:"referrer,omitempty" json:"referrer,omitempty"`
	IsActive        bool                `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
