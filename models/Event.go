package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID   `json:"ID" bson:"_id,omitempty"`
	AuthorID    primitive.ObjectID   `json:"authorID" bson:"authorID"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Location    Region               `json:"location" bson:"location"`
	Date        time.Time            `json:"date" bson:"date"`
	HourlyRate  float64              `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
	// Comments lists the ids of non-deleted comments, appended with $push and
	// pruned with $pull so its length always equals the live comment count.
	Comments    []primitive.ObjectID `json:"comments" bson:"comments"`
	IsDeleted   bool                 `json:"isDeleted" bson:"isDeleted"`
	IsFulfilled bool                 `json:"isFulfilled" bson:"isFulfilled"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}
