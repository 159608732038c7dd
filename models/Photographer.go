package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Photographer struct {
	ID                  primitive.ObjectID `json:"ID" bson:"_id,omitempty"`
	FirstName           string             `json:"firstName" bson:"firstName"`
	LastName            string             `json:"lastName" bson:"lastName"`
	Email               string             `json:"email" bson:"email"`
	Password            string             `json:"password,omitempty" bson:"password"`
	PhoneNumber         string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	SocialLogin         bool               `json:"socialLogin" bson:"socialLogin"`
	SocialProvider      string             `json:"socialProvider,omitempty" bson:"socialProvider,omitempty"`
	AvatarURL           string             `json:"avatarURL,omitempty" bson:"avatarURL,omitempty"`
	Bio                 string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Gear                string             `json:"gear,omitempty" bson:"gear,omitempty"`
	HourlyRate          float64            `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
	Rating              float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	Regions             []Region           `json:"regions" bson:"regions"`
	PortfolioImages     []string           `json:"portfolioImages" bson:"portfolioImages"`
	// Favorites maps a photographer id to true. Presence of a truthy value
	// means favorited; toggled with $set/$unset so concurrent toggles stay
	// single-document atomic.
	Favorites           map[string]bool    `json:"favorites,omitempty" bson:"favorites,omitempty"`
	// Availability holds YYYY-MM-DD dates on which the photographer is booked.
	Availability        []string           `json:"availability" bson:"availability"`
	PushTokens          []string           `json:"pushTokens,omitempty" bson:"pushTokens,omitempty"`
	AllowsNotifications *bool              `json:"allowsNotifications" bson:"allowsNotifications,omitempty"`
	Role                string             `json:"role" bson:"role"` // photographer, admin
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FavoriteIDs returns the ids of favorited photographers. Entries stored
// falsy are skipped.
func (p *Photographer) FavoriteIDs() []string {
	ids := make([]string, 0, len(p.Favorites))
	for id, favorited := range p.Favorites {
		if favorited {
			ids = append(ids, id)
		}
	}
	return ids
}
