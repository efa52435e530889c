package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmergencyContact is a regional responder reachable from the report flow.
// Managed only through the admin endpoints.
type EmergencyContact struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Region      string             `bson:"region"        json:"region"`
	ContactName string             `bson:"contactName"   json:"contactName"`
	PhoneNumber string             `bson:"phoneNumber"   json:"phoneNumber"`
	Designation string             `bson:"designation"   json:"designation"`
	City        string             `bson:"city,omitempty"  json:"city,omitempty"`
	State       string             `bson:"state,omitempty" json:"state,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
