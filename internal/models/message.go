package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
)

// Message belongs to exactly one chat. Deletion ("recall") is a hard
// removal, so a recalled message leaves no tombstone.
type Message struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ChatID      primitive.ObjectID `json:"chatRoomId" bson:"chatId" validate:"required"`
	SenderID    primitive.ObjectID `json:"senderId" bson:"senderId" validate:"required"`
	SenderName  string             `json:"senderName" bson:"senderName"`
	SenderRole  UserRole           `json:"senderRole" bson:"senderRole"`
	Content     string             `json:"content" bson:"content" validate:"required,max=1000"`
	MessageType MessageType        `json:"messageType" bson:"messageType"`
	ReadBy      []ReadReceipt      `json:"readBy" bson:"readBy"`
	CreatedAt   time.Time          `json:"timestamp" bson:"createdAt"`
}

type ReadReceipt struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	ReadAt time.Time          `json:"readAt" bson:"readAt"`
}
