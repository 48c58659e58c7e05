package handlers

import (
	"errors"
	"net/http"

	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/services"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatHandler struct {
	chatService services.ChatService
	logger      *logger.Logger
}

func NewChatHandler(chatService services.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      log,
	}
}

// ListRooms returns a user's chat rooms, most recently active first. Users
// can only read their own list; admins can read anyone's.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.FailResponse(c, http.StatusUnauthorized, utils.MsgChatRoomsError)
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		utils.FailResponse(c, http.StatusNotFound, utils.MsgUserNotFound)
		return
	}
	if userID != callerID && c.GetString("vai_tro") != "admin" {
		utils.FailResponse(c, http.StatusForbidden, utils.MsgChatRoomsError)
		return
	}

	rooms, err := h.chatService.GetRoomsForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list chat rooms")
		utils.FailResponse(c, http.StatusInternalServerError, utils.MsgChatRoomsError)
		return
	}

	utils.SuccessListResponse(c, len(rooms), rooms)
}

// ListMessages returns a room's messages in chronological order. Only
// participants can read a room.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FailResponse(c, http.StatusUnauthorized, utils.MsgChatMessagesError)
		return
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("roomId"))
	if err != nil {
		utils.FailResponse(c, http.StatusNotFound, utils.MsgChatMessagesError)
		return
	}

	messages, err := h.chatService.GetMessages(c.Request.Context(), chatID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrChatNotFound) {
			utils.FailResponse(c, http.StatusNotFound, utils.MsgChatMessagesError)
			return
		}
		h.logger.WithError(err).Error("Failed to list messages")
		utils.FailResponse(c, http.StatusInternalServerError, utils.MsgChatMessagesError)
		return
	}

	utils.SuccessListResponse(c, len(messages), messages)
}

// Send posts a message into a room the caller participates in.
func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FailResponse(c, http.StatusUnauthorized, utils.MsgChatSendError)
		return
	}

	var request services.SendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, utils.MsgChatSendError)
		return
	}
	request.SenderID = userID

	message, err := h.chatService.Send(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrChatNotFound):
			utils.FailResponse(c, http.StatusNotFound, utils.MsgChatSendError)
		case utils.IsValidationError(err):
			utils.FailResponse(c, http.StatusBadRequest, utils.MsgChatSendError)
		default:
			h.logger.WithError(err).Error("Failed to send message")
			utils.FailResponse(c, http.StatusInternalServerError, utils.MsgChatSendError)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, gin.H{
		"data":    message,
		"message": utils.MsgMessageSent,
	})
}

// CreateRoom opens (or returns) the room for a participant set.
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FailResponse(c, http.StatusUnauthorized, utils.MsgChatRoomError)
		return
	}

	var request services.CreateRoomRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, utils.MsgChatRoomError)
		return
	}
	request.CreatorID = userID

	room, err := h.chatService.CreateRoom(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrUserNotFound):
			utils.FailResponse(c, http.StatusNotFound, utils.MsgUserNotFound)
		case utils.IsValidationError(err):
			utils.FailResponse(c, http.StatusBadRequest, utils.MsgChatRoomError)
		default:
			h.logger.WithError(err).Error("Failed to create chat room")
			utils.FailResponse(c, http.StatusInternalServerError, utils.MsgChatRoomError)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"data": room})
}

// RecallMessage removes one of the caller's own messages.
func (h *ChatHandler) RecallMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FailResponse(c, http.StatusUnauthorized, utils.MsgMessageRecallError)
		return
	}

	messageID, err := primitive.ObjectIDFromHex(c.Param("messageId"))
	if err != nil {
		utils.FailResponse(c, http.StatusNotFound, utils.MsgMessageNotFound)
		return
	}

	if err := h.chatService.RecallMessage(c.Request.Context(), messageID, userID); err != nil {
		if errors.Is(err, interfaces.ErrMessageNotFound) {
			utils.FailResponse(c, http.StatusNotFound, utils.MsgMessageNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to recall message")
		utils.FailResponse(c, http.StatusInternalServerError, utils.MsgMessageRecallError)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": utils.MsgMessageRecalled})
}

// MarkRead zeroes the caller's unread counter and stamps read receipts.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FailResponse(c, http.StatusUnauthorized, utils.MsgChatRoomsError)
		return
	}

	chatID, err := primitive.ObjectIDFromHex(c.Param("roomId"))
	if err != nil {
		utils.FailResponse(c, http.StatusNotFound, utils.MsgChatRoomsError)
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), chatID, userID); err != nil {
		if errors.Is(err, interfaces.ErrChatNotFound) {
			utils.FailResponse(c, http.StatusNotFound, utils.MsgChatRoomsError)
			return
		}
		h.logger.WithError(err).Error("Failed to mark chat as read")
		utils.FailResponse(c, http.StatusInternalServerError, utils.MsgServerError)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": utils.MsgChatMarkedRead})
}
