package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Participant struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	Name   string             `json:"name" bson:"name"`
	Role   UserRole           `json:"role" bson:"role"`
}

// LastMessage is the denormalized summary shown in the room list.
type LastMessage struct {
	Content     string             `json:"content" bson:"content"`
	SenderID    primitive.ObjectID `json:"senderId" bson:"senderId"`
	SenderName  string             `json:"senderName" bson:"senderName"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
	MessageType MessageType        `json:"messageType" bson:"messageType"`
}

// Chat is a conversation thread scoped to a fixed set of participants.
// Identity is the participant set: two rooms with the same participants
// (in any order) are the same room. ParticipantKey is the canonical form
// of that set and carries a unique index in Mongo.
type Chat struct {
	ID             primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name           string              `json:"name" bson:"name"`
	Participants   []Participant       `json:"participants" bson:"participants" validate:"required,min=2"`
	ParticipantKey string              `json:"-" bson:"participantKey"`
	TripID         *primitive.ObjectID `json:"tripId,omitempty" bson:"tripId,omitempty"`
	TripRoute      string              `json:"tripRoute,omitempty" bson:"tripRoute,omitempty"`
	LastMessage    *LastMessage        `json:"lastMessage" bson:"lastMessage"`
	UnreadCount    map[string]int      `json:"unreadCount" bson:"unreadCount"`
	IsActive       bool                `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

func (c *Chat) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// ParticipantSetKey builds the canonical key for a participant set:
// sorted hex ids joined with ":". Order-independent by construction.
func ParticipantSetKey(ids []primitive.ObjectID) string {
	hexes := make([]string, 0, len(ids))
	for _, id := range ids {
		hexes = append(hexes, id.Hex())
	}
	sort.Strings(hexes)
	return strings.Join(hexes, ":")
}
