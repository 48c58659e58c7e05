package utils

import "time"

const (
	AppName    = "HaPhuongBus"
	AppVersion = "1.0.0"

	// Tokens carry user id and role and expire exactly 24h after issuance.
	JWTAccessTokenTTL = 24 * time.Hour

	MaxMessageLength = 1000
)

// User-facing messages. The product surface is Vietnamese; logs stay English.
const (
	MsgMissingCredentials = "Vui lòng nhập đầy đủ thông tin"
	MsgPhoneNotFound      = "Số điện thoại không tồn tại"
	MsgWrongPassword      = "Mật khẩu không đúng"
	MsgPhoneTaken         = "Số điện thoại đã được sử dụng"
	MsgServerError        = "Lỗi server"

	MsgBookingCreateError = "Lỗi khi tạo booking"
	MsgBookingDeleteError = "Lỗi khi hủy booking"
	MsgBookingNotFound    = "Không tìm thấy booking"
	MsgBookingCancelled   = "Hủy vé thành công"
	MsgNotEnoughSeats     = "Không đủ ghế trống"

	MsgUserNotFound  = "Không tìm thấy user"
	MsgUserUpdated   = "Cập nhật thông tin thành công"
	MsgUserUpdateErr = "Lỗi cập nhật thông tin"

	MsgChatRoomsError     = "Lỗi lấy danh sách chat"
	MsgChatMessagesError  = "Lỗi lấy tin nhắn"
	MsgChatSendError      = "Lỗi gửi tin nhắn"
	MsgChatRoomError      = "Lỗi tạo chat room"
	MsgMessageSent        = "Gửi tin nhắn thành công"
	MsgMessageNotFound    = "Không tìm thấy tin nhắn"
	MsgMessageRecalled    = "Thu hồi tin nhắn thành công"
	MsgMessageRecallError = "Lỗi khi thu hồi tin nhắn"
	MsgChatMarkedRead     = "Đã đánh dấu đã đọc"

	MsgRouteNotFound = "Route not found"
	MsgInternalError = "Something went wrong!"
)
