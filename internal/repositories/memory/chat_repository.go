package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatRepository struct {
	mu       sync.RWMutex
	chats    map[primitive.ObjectID]*models.Chat
	messages map[primitive.ObjectID]*models.Message
}

func NewChatRepository() interfaces.ChatRepository {
	return &chatRepository{
		chats:    make(map[primitive.ObjectID]*models.Chat),
		messages: make(map[primitive.ObjectID]*models.Message),
	}
}

// Chats

func (r *chatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = time.Now()

	r.chats[chat.ID] = cloneChat(chat)
	return nil
}

func (r *chatRepository) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chat, ok := r.chats[id]
	if !ok {
		return nil, interfaces.ErrChatNotFound
	}
	return cloneChat(chat), nil
}

func (r *chatRepository) GetChatByParticipantKey(ctx context.Context, key string) (*models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, chat := range r.chats {
		if chat.ParticipantKey == key && chat.IsActive {
			return cloneChat(chat), nil
		}
	}
	return nil, interfaces.ErrChatNotFound
}

func (r *chatRepository) GetChatsByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chats []*models.Chat
	for _, chat := range r.chats {
		if chat.IsActive && chat.HasParticipant(userID) {
			chats = append(chats, cloneChat(chat))
		}
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	return chats, nil
}

func (r *chatRepository) SetLastMessage(ctx context.Context, chatID primitive.ObjectID, last *models.LastMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[chatID]
	if !ok {
		return interfaces.ErrChatNotFound
	}

	if last != nil {
		clone := *last
		chat.LastMessage = &clone
	} else {
		chat.LastMessage = nil
	}
	chat.UpdatedAt = time.Now()
	return nil
}

func (r *chatRepository) IncrementUnread(ctx context.Context, chatID primitive.ObjectID, userIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[chatID]
	if !ok {
		return interfaces.ErrChatNotFound
	}
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	for _, id := range userIDs {
		chat.UnreadCount[id.Hex()]++
	}
	return nil
}

func (r *chatRepository) ResetUnread(ctx context.Context, chatID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[chatID]
	if !ok {
		return interfaces.ErrChatNotFound
	}
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	chat.UnreadCount[userID.Hex()] = 0
	return nil
}

// Messages

func (r *chatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	r.messages[message.ID] = cloneMessage(message)
	return nil
}

func (r *chatRepository) GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	message, ok := r.messages[id]
	if !ok {
		return nil, interfaces.ErrMessageNotFound
	}
	return cloneMessage(message), nil
}

func (r *chatRepository) GetMessagesByChatID(ctx context.Context, chatID primitive.ObjectID) ([]*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var messages []*models.Message
	for _, message := range r.messages {
		if message.ChatID == chatID {
			messages = append(messages, cloneMessage(message))
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *chatRepository) GetLastMessage(ctx context.Context, chatID primitive.ObjectID) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last *models.Message
	for _, message := range r.messages {
		if message.ChatID != chatID {
			continue
		}
		if last == nil || message.CreatedAt.After(last.CreatedAt) {
			last = message
		}
	}
	if last == nil {
		return nil, interfaces.ErrMessageNotFound
	}
	return cloneMessage(last), nil
}

func (r *chatRepository) DeleteMessage(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[id]; !ok {
		return interfaces.ErrMessageNotFound
	}
	delete(r.messages, id)
	return nil
}

func (r *chatRepository) MarkAllMessagesAsRead(ctx context.Context, chatID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, message := range r.messages {
		if message.ChatID != chatID || message.SenderID == userID {
			continue
		}
		if hasReadReceipt(message, userID) {
			continue
		}
		message.ReadBy = append(message.ReadBy, models.ReadReceipt{
			UserID: userID,
			ReadAt: now,
		})
	}
	return nil
}

func hasReadReceipt(message *models.Message, userID primitive.ObjectID) bool {
	for _, receipt := range message.ReadBy {
		if receipt.UserID == userID {
			return true
		}
	}
	return false
}

func cloneChat(chat *models.Chat) *models.Chat {
	clone := *chat
	clone.Participants = make([]models.Participant, len(chat.Participants))
	copy(clone.Participants, chat.Participants)
	if chat.LastMessage != nil {
		last := *chat.LastMessage
		clone.LastMessage = &last
	}
	clone.UnreadCount = make(map[string]int, len(chat.UnreadCount))
	for id, count := range chat.UnreadCount {
		clone.UnreadCount[id] = count
	}
	return &clone
}

func cloneMessage(message *models.Message) *models.Message {
	clone := *message
	clone.ReadBy = make([]models.ReadReceipt, len(message.ReadBy))
	copy(clone.ReadBy, message.ReadBy)
	return &clone
}
