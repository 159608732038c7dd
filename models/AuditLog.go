package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditLog struct {
	ID           primitive.ObjectID `json:"ID" bson:"_id,omitempty"`
	AdminID      primitive.ObjectID `json:"adminID" bson:"adminID"`
	Action       string             `json:"action" bson:"action"`
	ResourceType string             `json:"resourceType" bson:"resourceType"`
	ResourceID   string             `json:"resourceID" bson:"resourceID"`
	BeforeJSON   string             `json:"beforeJSON,omitempty" bson:"beforeJSON,omitempty"`
	AfterJSON    string             `json:"afterJSON,omitempty" bson:"afterJSON,omitempty"`
	IPAddress    string             `json:"ipAddress" bson:"ipAddress"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
