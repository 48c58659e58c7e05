package mongodb

import (
	"context"
	"fmt"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type chatRepository struct {
	chatsCollection    *mongo.Collection
	messagesCollection *mongo.Collection
	cache              services.CacheService
}

func NewChatRepository(db *mongo.Database, cache services.CacheService) interfaces.ChatRepository {
	return &chatRepository{
		chatsCollection:    db.Collection("chats"),
		messagesCollection: db.Collection("messages"),
		cache:              cache,
	}
}

// Chats

func (r *chatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = time.Now()

	_, err := r.chatsCollection.InsertOne(ctx, chat)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}

	r.cacheChat(ctx, chat)
	return nil
}

func (r *chatRepository) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	if chat := r.getChatFromCache(ctx, id.Hex()); chat != nil {
		return chat, nil
	}

	var chat models.Chat
	err := r.chatsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	r.cacheChat(ctx, &chat)
	return &chat, nil
}

func (r *chatRepository) GetChatByParticipantKey(ctx context.Context, key string) (*models.Chat, error) {
	var chat models.Chat
	err := r.chatsCollection.FindOne(ctx, bson.M{"participantKey": key, "isActive": true}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat by participants: %w", err)
	}
	return &chat, nil
}

func (r *chatRepository) GetChatsByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Chat, error) {
	filter := bson.M{
		"participants.userId": userID,
		"isActive":            true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := r.chatsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find chats: %w", err)
	}
	defer cursor.Close(ctx)

	var chats []*models.Chat
	for cursor.Next(ctx) {
		var chat models.Chat
		if err := cursor.Decode(&chat); err != nil {
			return nil, fmt.Errorf("failed to decode chat: %w", err)
		}
		chats = append(chats, &chat)
	}
	return chats, nil
}

func (r *chatRepository) SetLastMessage(ctx context.Context, chatID primitive.ObjectID, last *models.LastMessage) error {
	_, err := r.chatsCollection.UpdateOne(
		ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{
			"lastMessage": last,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last message: %w", err)
	}

	r.invalidateChatCache(ctx, chatID.Hex())
	return nil
}

func (r *chatRepository) IncrementUnread(ctx context.Context, chatID primitive.ObjectID, userIDs []primitive.ObjectID) error {
	if len(userIDs) == 0 {
		return nil
	}

	inc := bson.M{}
	for _, id := range userIDs {
		inc["unreadCount."+id.Hex()] = 1
	}

	_, err := r.chatsCollection.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("failed to increment unread counters: %w", err)
	}

	r.invalidateChatCache(ctx, chatID.Hex())
	return nil
}

func (r *chatRepository) ResetUnread(ctx context.Context, chatID, userID primitive.ObjectID) error {
	_, err := r.chatsCollection.UpdateOne(
		ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"unreadCount." + userID.Hex(): 0}},
	)
	if err != nil {
		return fmt.Errorf("failed to reset unread counter: %w", err)
	}

	r.invalidateChatCache(ctx, chatID.Hex())
	return nil
}

// Messages

func (r *chatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := r.messagesCollection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *chatRepository) GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var message models.Message
	err := r.messagesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &message, nil
}

func (r *chatRepository) GetMessagesByChatID(ctx context.Context, chatID primitive.ObjectID) ([]*models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.messagesCollection.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	for cursor.Next(ctx) {
		var message models.Message
		if err := cursor.Decode(&message); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, &message)
	}
	return messages, nil
}

func (r *chatRepository) GetLastMessage(ctx context.Context, chatID primitive.ObjectID) (*models.Message, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var message models.Message
	err := r.messagesCollection.FindOne(ctx, bson.M{"chatId": chatID}, opts).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get last message: %w", err)
	}
	return &message, nil
}

func (r *chatRepository) DeleteMessage(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.messagesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrMessageNotFound
	}
	return nil
}

func (r *chatRepository) MarkAllMessagesAsRead(ctx context.Context, chatID, userID primitive.ObjectID) error {
	readReceipt := models.ReadReceipt{
		UserID: userID,
		ReadAt: time.Now(),
	}

	_, err := r.messagesCollection.UpdateMany(
		ctx,
		bson.M{
			"chatId":        chatID,
			"senderId":      bson.M{"$ne": userID},
			"readBy.userId": bson.M{"$ne": userID},
		},
		bson.M{"$push": bson.M{"readBy": readReceipt}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages as read: %w", err)
	}
	return nil
}

// Cache helpers

func (r *chatRepository) cacheChat(ctx context.Context, chat *models.Chat) {
	if r.cache != nil {
		r.cache.Set(ctx, "chat:"+chat.ID.Hex(), chat, 15*time.Minute)
	}
}

func (r *chatRepository) getChatFromCache(ctx context.Context, chatID string) *models.Chat {
	if r.cache == nil {
		return nil
	}

	var chat models.Chat
	if err := r.cache.Get(ctx, "chat:"+chatID, &chat); err != nil {
		return nil
	}
	return &chat
}

func (r *chatRepository) invalidateChatCache(ctx context.Context, chatID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, "chat:"+chatID)
	}
}
