package interfaces

import (
	"context"

	"haphuong/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRepository interface {
	// Chats
	CreateChat(ctx context.Context, chat *models.Chat) error
	GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	GetChatByParticipantKey(ctx context.Context, key string) (*models.Chat, error)
	GetChatsByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Chat, error)
	SetLastMessage(ctx context.Context, chatID primitive.ObjectID, last *models.LastMessage) error
	IncrementUnread(ctx context.Context, chatID primitive.ObjectID, userIDs []primitive.ObjectID) error
	ResetUnread(ctx context.Context, chatID, userID primitive.ObjectID) error

	// Messages
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	GetMessagesByChatID(ctx context.Context, chatID primitive.ObjectID) ([]*models.Message, error)
	GetLastMessage(ctx context.Context, chatID primitive.ObjectID) (*models.Message, error)
	DeleteMessage(ctx context.Context, id primitive.ObjectID) error
	MarkAllMessagesAsRead(ctx context.Context, chatID, userID primitive.ObjectID) error
}
