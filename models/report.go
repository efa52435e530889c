package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location type options offered on the report form.
const (
	LocationBuildings = "Buildings"
	LocationFarm      = "Farm"
	LocationCliffTree = "Tall Cliffs/Tree"
	LocationBridges   = "Bridges"
	LocationOther     = "Other"
)

// Reporter role options.
const (
	RoleFarmer        = "Farmer"
	RoleGeneralPublic = "General Public"
	RoleAuthorized    = "Authorized Person"
	RoleResearcher    = "Researcher"
	RoleStudent       = "Student"
)

// GPS is a coordinate pair as captured on the reporting device.
// The "long" key is kept for compatibility with stored documents.
type GPS struct {
	Lat  float64 `bson:"lat"  json:"lat"`
	Long float64 `bson:"long" json:"long"`
}

// Report is a verified colony sighting. Reports are immutable once created;
// there is no update or delete surface for end users.
type Report struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Image        string             `bson:"image"         json:"image"` // URL path under /uploads
	GPS          GPS                `bson:"gps"           json:"gps"`
	LocationType string             `bson:"locationType"  json:"locationType"`
	UserRole     string             `bson:"userRole"      json:"userRole"`
	Address      string             `bson:"address,omitempty"     json:"address,omitempty"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Timestamp    time.Time          `bson:"timestamp"     json:"timestamp"`
}
