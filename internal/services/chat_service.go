package services

import (
	"context"
	"errors"
	"strings"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatService interface {
	GetRoomsForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Chat, error)
	GetMessages(ctx context.Context, chatID, userID primitive.ObjectID) ([]*models.Message, error)
	Send(ctx context.Context, request *SendMessageRequest) (*models.Message, error)
	CreateRoom(ctx context.Context, request *CreateRoomRequest) (*models.Chat, error)
	RecallMessage(ctx context.Context, messageID, userID primitive.ObjectID) error
	MarkRead(ctx context.Context, chatID, userID primitive.ObjectID) error
}

// ChatNotifier pushes chat events to connected clients. The websocket hub
// implements it; a nil notifier disables pushes.
type ChatNotifier interface {
	MessageCreated(chat *models.Chat, message *models.Message)
}

type chatService struct {
	chatRepo interfaces.ChatRepository
	userRepo interfaces.UserRepository
	notifier ChatNotifier
	logger   *logger.Logger
}

type SendMessageRequest struct {
	ChatID      primitive.ObjectID `json:"chatRoomId" validate:"required"`
	SenderID    primitive.ObjectID `json:"senderId"`
	Content     string             `json:"content" validate:"required,max=1000"`
	MessageType models.MessageType `json:"messageType"`
}

type CreateRoomRequest struct {
	CreatorID      primitive.ObjectID   `json:"-"`
	ParticipantIDs []primitive.ObjectID `json:"participants" validate:"required,min=1"`
	Name           string               `json:"name"`
	TripID         *primitive.ObjectID  `json:"tripId"`
	TripRoute      string               `json:"tripRoute"`
}

func NewChatService(chatRepo interfaces.ChatRepository, userRepo interfaces.UserRepository, notifier ChatNotifier, log *logger.Logger) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   log,
	}
}

func (s *chatService) GetRoomsForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Chat, error) {
	return s.chatRepo.GetChatsByParticipant(ctx, userID)
}

func (s *chatService) GetMessages(ctx context.Context, chatID, userID primitive.ObjectID) ([]*models.Message, error) {
	chat, err := s.chatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, interfaces.ErrChatNotFound
	}
	return s.chatRepo.GetMessagesByChatID(ctx, chatID)
}

func (s *chatService) Send(ctx context.Context, request *SendMessageRequest) (*models.Message, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.GetChatByID(ctx, request.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(request.SenderID) {
		return nil, interfaces.ErrChatNotFound
	}

	sender, err := s.userRepo.GetByID(ctx, request.SenderID)
	if err != nil {
		return nil, err
	}

	messageType := request.MessageType
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	message := &models.Message{
		ChatID:      chat.ID,
		SenderID:    sender.ID,
		SenderName:  sender.HoTen,
		SenderRole:  sender.VaiTro,
		Content:     request.Content,
		MessageType: messageType,
	}

	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	last := &models.LastMessage{
		Content:     message.Content,
		SenderID:    message.SenderID,
		SenderName:  message.SenderName,
		Timestamp:   message.CreatedAt,
		MessageType: message.MessageType,
	}
	if err := s.chatRepo.SetLastMessage(ctx, chat.ID, last); err != nil {
		s.logger.WithError(err).WithField("chat_id", chat.ID.Hex()).Error("Failed to update last message")
	}

	var recipients []primitive.ObjectID
	for _, p := range chat.Participants {
		if p.UserID != sender.ID {
			recipients = append(recipients, p.UserID)
		}
	}
	if err := s.chatRepo.IncrementUnread(ctx, chat.ID, recipients); err != nil {
		s.logger.WithError(err).WithField("chat_id", chat.ID.Hex()).Error("Failed to increment unread counters")
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(chat, message)
	}
	return message, nil
}

func (s *chatService) CreateRoom(ctx context.Context, request *CreateRoomRequest) (*models.Chat, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	ids := append([]primitive.ObjectID{request.CreatorID}, request.ParticipantIDs...)
	ids = dedupeIDs(ids)
	if len(ids) < 2 {
		return nil, errors.New("a chat room needs at least two participants")
	}

	// Rooms are keyed by their participant set, so asking for the same
	// pair twice returns the existing room.
	key := models.ParticipantSetKey(ids)
	if existing, err := s.chatRepo.GetChatByParticipantKey(ctx, key); err == nil {
		return existing, nil
	} else if !errors.Is(err, interfaces.ErrChatNotFound) {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(ids))
	names := make([]string, 0, len(ids))
	unread := make(map[string]int, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, models.Participant{
			UserID: user.ID,
			Name:   user.HoTen,
			Role:   user.VaiTro,
		})
		names = append(names, user.HoTen)
		unread[user.ID.Hex()] = 0
	}

	name := request.Name
	if name == "" {
		name = request.TripRoute
	}
	if name == "" {
		name = strings.Join(names, ", ")
	}

	chat := &models.Chat{
		Name:           name,
		Participants:   participants,
		ParticipantKey: key,
		TripID:         request.TripID,
		TripRoute:      request.TripRoute,
		UnreadCount:    unread,
		IsActive:       true,
	}

	if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.WithField("chat_id", chat.ID.Hex()).Info("Chat room created")
	return chat, nil
}

func (s *chatService) RecallMessage(ctx context.Context, messageID, userID primitive.ObjectID) error {
	message, err := s.chatRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != userID {
		return interfaces.ErrMessageNotFound
	}

	if err := s.chatRepo.DeleteMessage(ctx, messageID); err != nil {
		return err
	}

	// Recompute the room preview from whatever message is now newest.
	last, err := s.chatRepo.GetLastMessage(ctx, message.ChatID)
	switch {
	case err == nil:
		err = s.chatRepo.SetLastMessage(ctx, message.ChatID, &models.LastMessage{
			Content:     last.Content,
			SenderID:    last.SenderID,
			SenderName:  last.SenderName,
			Timestamp:   last.CreatedAt,
			MessageType: last.MessageType,
		})
	case errors.Is(err, interfaces.ErrMessageNotFound):
		err = s.chatRepo.SetLastMessage(ctx, message.ChatID, nil)
	}
	if err != nil {
		s.logger.WithError(err).WithField("chat_id", message.ChatID.Hex()).Error("Failed to refresh last message after recall")
	}
	return nil
}

func (s *chatService) MarkRead(ctx context.Context, chatID, userID primitive.ObjectID) error {
	chat, err := s.chatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return interfaces.ErrChatNotFound
	}

	if err := s.chatRepo.ResetUnread(ctx, chatID, userID); err != nil {
		return err
	}
	return s.chatRepo.MarkAllMessagesAsRead(ctx, chatID, userID)
}

func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
