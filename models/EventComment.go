package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventComment struct {
	ID        primitive.ObjectID `json:"ID" bson:"_id,omitempty"`
	EventID   primitive.ObjectID `json:"eventID" bson:"eventID"`
	AuthorID  primitive.ObjectID `json:"authorID" bson:"authorID"`
	Text      string             `json:"text" bson:"text"`
	IsDeleted bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
