package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is either a thread root (an event proposal sent to another
// photographer) or a reply referencing its root via ReplyTo. Roots accumulate
// reply ids and track the last-reply time plus per-side unread flags.
type Message struct {
	ID          primitive.ObjectID `json:"ID" bson:"_id,omitempty"`
	SenderID    primitive.ObjectID `json:"senderID" bson:"senderID"`
	RecipientID primitive.ObjectID `json:"recipientID" bson:"recipientID"`
	Body        string             `json:"body" bson:"body"`

	// Denormalized event-proposal fields, set on roots only.
	EventTitle       string    `json:"eventTitle,omitempty" bson:"eventTitle,omitempty"`
	EventType        string    `json:"eventType,omitempty" bson:"eventType,omitempty"`
	EventLocation    Region    `json:"eventLocation,omitempty" bson:"eventLocation,omitempty"`
	EventDescription string    `json:"eventDescription,omitempty" bson:"eventDescription,omitempty"`
	EventDate        time.Time `json:"eventDate,omitempty" bson:"eventDate,omitempty"`

	ReplyTo           *primitive.ObjectID  `json:"replyTo,omitempty" bson:"replyTo,omitempty"`
	Replies           []primitive.ObjectID `json:"replies" bson:"replies"`
	LastReply         time.Time            `json:"lastReply" bson:"lastReply"`
	UnreadBySender    bool                 `json:"unreadBySender" bson:"unreadBySender"`
	UnreadByRecipient bool                 `json:"unreadByRecipient" bson:"unreadByRecipient"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
