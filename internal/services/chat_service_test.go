package services

import (
	"context"
	"errors"
	"testing"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/repositories/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingNotifier struct {
	events []*models.Message
}

func (n *recordingNotifier) MessageCreated(chat *models.Chat, message *models.Message) {
	n.events = append(n.events, message)
}

type chatFixture struct {
	svc      ChatService
	chatRepo interfaces.ChatRepository
	notifier *recordingNotifier
	admin    *models.User
	user     *models.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := memory.NewUserRepository()
	chatRepo := memory.NewChatRepository()

	admin := &models.User{HoTen: "Admin Hà Phương", SoDienThoai: "0123456789", MatKhau: "x", VaiTro: models.RoleAdmin}
	user := &models.User{HoTen: "Nguyễn Văn A", SoDienThoai: "0987654321", MatKhau: "x", VaiTro: models.RoleUser}
	for _, u := range []*models.User{admin, user} {
		if err := userRepo.Create(ctx, u); err != nil {
			t.Fatalf("create user error: %v", err)
		}
	}

	notifier := &recordingNotifier{}
	return &chatFixture{
		svc:      NewChatService(chatRepo, userRepo, notifier, newTestLogger(t)),
		chatRepo: chatRepo,
		notifier: notifier,
		admin:    admin,
		user:     user,
	}
}

func TestCreateRoomIdempotentAnyOrder(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateRoom(ctx, &CreateRoomRequest{
		CreatorID:      f.admin.ID,
		ParticipantIDs: []primitive.ObjectID{f.user.ID},
	})
	if err != nil {
		t.Fatalf("create room error: %v", err)
	}

	// Same pair, reversed initiator.
	second, err := f.svc.CreateRoom(ctx, &CreateRoomRequest{
		CreatorID:      f.user.ID,
		ParticipantIDs: []primitive.ObjectID{f.admin.ID},
	})
	if err != nil {
		t.Fatalf("create room error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("same participant set must map to one room: %s vs %s", first.ID.Hex(), second.ID.Hex())
	}

	rooms, err := f.svc.GetRoomsForUser(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("rooms error: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
}

func TestSendUpdatesRoomStateAndNotifies(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.svc.CreateRoom(ctx, &CreateRoomRequest{
		CreatorID:      f.admin.ID,
		ParticipantIDs: []primitive.ObjectID{f.user.ID},
	})
	if err != nil {
		t.Fatalf("create room error: %v", err)
	}

	message, err := f.svc.Send(ctx, &SendMessageRequest{
		ChatID:   room.ID,
		SenderID: f.admin.ID,
		Content:  "Xin chào!",
	})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	if message.MessageType != models.MessageTypeText {
		t.Fatalf("messageType = %s, want text", message.MessageType)
	}
	if message.SenderName != f.admin.HoTen {
		t.Fatalf("senderName = %s, want %s", message.SenderName, f.admin.HoTen)
	}

	stored, err := f.chatRepo.GetChatByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get chat error: %v", err)
	}
	if stored.LastMessage == nil || stored.LastMessage.Content != "Xin chào!" {
		t.Fatalf("lastMessage not updated: %+v", stored.LastMessage)
	}
	if stored.UnreadCount[f.user.ID.Hex()] != 1 {
		t.Fatalf("recipient unread = %d, want 1", stored.UnreadCount[f.user.ID.Hex()])
	}
	if stored.UnreadCount[f.admin.ID.Hex()] != 0 {
		t.Fatalf("sender unread = %d, want 0", stored.UnreadCount[f.admin.ID.Hex()])
	}

	if len(f.notifier.events) != 1 || f.notifier.events[0].ID != message.ID {
		t.Fatalf("notifier not invoked for the new message")
	}
}

func TestSendRejectsOutsiders(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.svc.CreateRoom(ctx, &CreateRoomRequest{
		CreatorID:      f.admin.ID,
		ParticipantIDs: []primitive.ObjectID{f.user.ID},
	})
	if err != nil {
		t.Fatalf("create room error: %v", err)
	}

	_, err = f.svc.Send(ctx, &SendMessageRequest{
		ChatID:   room.ID,
		SenderID: primitive.NewObjectID(),
		Content:  "hello",
	})
	if !errors.Is(err, interfaces.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound for non-participant, got %v", err)
	}

	if _, err := f.svc.GetMessages(ctx, room.ID, primitive.NewObjectID()); !errors.Is(err, interfaces.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound reading as outsider, got %v", err)
	}
}

func TestMarkReadClearsUnreadAndStampsReceipts(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.svc.CreateRoom(ctx, &CreateRoomRequest{
		CreatorID:      f.admin.ID,
		ParticipantIDs: []primitive.ObjectID{f.user.ID},
	})
	if err != nil {
		t.Fatalf("create room error: %v", err)
	}

	for _, content := range []string{"một", "hai"} {
		if _, err := f.svc.Send(ctx, &SendMessageRequest{ChatID: room.ID, SenderID: f.admin.ID, Content: content}); err != nil {
			t.Fatalf("send error: %v", err)
		}
	}

	if err := f.svc.MarkRead(ctx, room.ID, f.user.ID); err != nil {
		t.Fatalf("mark read error: %v", err)
	}

	stored, err := f.chatRepo.GetChatByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get chat error: %v", err)
	}
	if stored.UnreadCount[f.user.ID.Hex()] != 0 {
		t.Fatalf("unread = %d, want 0", stored.UnreadCount[f.user.ID.Hex()])
	}

	messages, err := f.svc.GetMessages(ctx, room.ID, f.user.ID)
	if err != nil {
		t.Fatalf("messages error: %v", err)
	}
	for _, message := range messages {
		found := false
		for _, receipt := range message.ReadBy {
			if receipt.UserID == f.user.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("message %q missing read receipt", message.Content)
		}
	}
}

func TestRecallRecomputesLastMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.svc.CreateRoom(ctx, &CreateRoomRequest{
		CreatorID:      f.admin.ID,
		ParticipantIDs: []primitive.ObjectID{f.user.ID},
	})
	if err != nil {
		t.Fatalf("create room error: %v", err)
	}

	older, err := f.svc.Send(ctx, &SendMessageRequest{ChatID: room.ID, SenderID: f.admin.ID, Content: "trước"})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	newer, err := f.svc.Send(ctx, &SendMessageRequest{ChatID: room.ID, SenderID: f.user.ID, Content: "sau"})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}

	// Only the sender can recall.
	if err := f.svc.RecallMessage(ctx, newer.ID, f.admin.ID); !errors.Is(err, interfaces.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound recalling someone else's message, got %v", err)
	}

	if err := f.svc.RecallMessage(ctx, newer.ID, f.user.ID); err != nil {
		t.Fatalf("recall error: %v", err)
	}

	stored, err := f.chatRepo.GetChatByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get chat error: %v", err)
	}
	if stored.LastMessage == nil || stored.LastMessage.Content != older.Content {
		t.Fatalf("lastMessage should fall back to %q, got %+v", older.Content, stored.LastMessage)
	}

	if err := f.svc.RecallMessage(ctx, older.ID, f.admin.ID); err != nil {
		t.Fatalf("recall error: %v", err)
	}
	stored, err = f.chatRepo.GetChatByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get chat error: %v", err)
	}
	if stored.LastMessage != nil {
		t.Fatalf("lastMessage should clear when the room empties, got %+v", stored.LastMessage)
	}
}
