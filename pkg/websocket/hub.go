// Package websocket relays chat events to connected clients. The hub is a
// notification channel only; messages are persisted through the HTTP API
// and pushed here after the fact.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"haphuong/internal/models"
	"haphuong/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
	logger     *logger.Logger
}

type Message struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"room_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// MessageCreated pushes a freshly persisted chat message to every
// participant's personal room and to the chat's own room.
func (h *Hub) MessageCreated(chat *models.Chat, message *models.Message) {
	data := map[string]interface{}{
		"chatRoomId": message.ChatID.Hex(),
		"senderId":   message.SenderID.Hex(),
		"senderName": message.SenderName,
		"content":    message.Content,
		"timestamp":  message.CreatedAt,
	}

	event := Message{
		Type:      "new_message",
		RoomID:    chatRoom(chat.ID),
		Timestamp: time.Now().Unix(),
		Data:      data,
	}
	h.sendToRoom(event.RoomID, event)

	for _, p := range chat.Participants {
		if p.UserID == message.SenderID {
			continue
		}
		h.SendToUser(p.UserID, Message{
			Type:      "chat_notification",
			UserID:    p.UserID,
			Timestamp: time.Now().Unix(),
			Data:      data,
		})
	}
}

func (h *Hub) SendToUser(userID primitive.ObjectID, message Message) {
	h.sendToRoom(personalRoom(userID), message)
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	h.logger.WithUserID(client.UserID.Hex()).Debug("WebSocket client registered")

	h.joinRoom(client, personalRoom(client.UserID))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}

		h.logger.WithUserID(client.UserID.Hex()).Debug("WebSocket client unregistered")
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		h.logger.WithError(err).Warn("Dropping malformed websocket message")
		return
	}

	if msg.RoomID != "" {
		h.sendToRoom(msg.RoomID, msg)
	}
}

func (h *Hub) sendToRoom(roomID string, message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	data, _ := json.Marshal(message)
	for client := range room {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
			delete(room, client)
		}
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) JoinChat(client *Client, chatID primitive.ObjectID) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.joinRoom(client, chatRoom(chatID))
}

func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func personalRoom(userID primitive.ObjectID) string {
	return "user_" + userID.Hex()
}

func chatRoom(chatID primitive.ObjectID) string {
	return "chat_" + chatID.Hex()
}
