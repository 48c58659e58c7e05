// Package seed holds the operational data loaders: demo data for the
// in-memory store and the one-off jobs the seed CLI exposes against Mongo.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type Stores struct {
	Users interfaces.UserRepository
	Trips interfaces.TripRepository
	Chats interfaces.ChatRepository
}

// Demo loads the accounts and trips the demo server starts with. The demo
// password applies to every account; it goes through bcrypt like any real
// registration.
func Demo(ctx context.Context, stores *Stores, demoPassword string, log *logger.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := []*models.User{
		{
			HoTen:       "Admin Hà Phương",
			SoDienThoai: "0123456789",
			Email:       "admin@haphuong.vn",
			MatKhau:     string(hash),
			VaiTro:      models.RoleAdmin,
		},
		{
			HoTen:       "Nguyễn Văn A",
			SoDienThoai: "0987654321",
			Email:       "user@haphuong.vn",
			MatKhau:     string(hash),
			VaiTro:      models.RoleUser,
		},
		{
			HoTen:       "Trần Văn Tài",
			SoDienThoai: "0111222333",
			MatKhau:     string(hash),
			VaiTro:      models.RoleDriver,
			BienSoXe:    "51A-12345",
		},
	}

	for _, user := range users {
		if err := stores.Users.Create(ctx, user); err != nil {
			if errors.Is(err, interfaces.ErrPhoneTaken) {
				continue
			}
			return fmt.Errorf("failed to seed user %s: %w", user.SoDienThoai, err)
		}
	}

	if err := Trips(ctx, stores.Trips, log); err != nil {
		return err
	}

	log.Info("Demo data seeded")
	return nil
}

// Trips creates the two sample runs departing tomorrow morning.
func Trips(ctx context.Context, tripRepo interfaces.TripRepository, log *logger.Logger) error {
	tomorrow := time.Now().AddDate(0, 0, 1)
	eightAM := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 8, 0, 0, 0, time.Local)

	trips := []*models.Trip{
		sampleTrip("Hà Nội", "Sapa", eightAM, 16, "A", 250000, "Nguyễn Văn Tài", "30A-12345"),
		sampleTrip("Hà Nội", "Đà Nẵng", eightAM.Add(2*time.Hour), 20, "B", 350000, "Trần Văn Nam", "30A-67890"),
	}

	for _, trip := range trips {
		if err := tripRepo.Create(ctx, trip); err != nil {
			return fmt.Errorf("failed to seed trip %s - %s: %w", trip.DiemDi, trip.DiemDen, err)
		}
		log.WithFields(map[string]interface{}{
			"trip_id": trip.ID.Hex(),
			"route":   trip.DiemDi + " - " + trip.DiemDen,
		}).Info("Seeded trip")
	}
	return nil
}

func sampleTrip(diemDi, diemDen string, departure time.Time, soGhe int, seatPrefix string, giaVe int64, taiXe, bienSoXe string) *models.Trip {
	seats := make([]models.Seat, soGhe)
	for i := range seats {
		seats[i] = models.Seat{
			TenGhe:    fmt.Sprintf("%s%d", seatPrefix, i+1),
			TrangThai: models.SeatStatusEmpty,
			GiaVe:     giaVe,
		}
	}

	return &models.Trip{
		NhaXe:            "Hà Phương",
		DiemDi:           diemDi,
		DiemDen:          diemDen,
		ThoiGianKhoiHanh: departure,
		SoGhe:            soGhe,
		SoGheTrong:       soGhe,
		DanhSachGhe:      seats,
		TaiXe:            taiXe,
		BienSoXe:         bienSoXe,
	}
}

// Admin creates (or repairs) the admin account and a test user. Idempotent:
// an existing admin keeps its password, only the role is corrected.
func Admin(ctx context.Context, userRepo interfaces.UserRepository, adminPassword, userPassword string, log *logger.Logger) error {
	if err := ensureUser(ctx, userRepo, &models.User{
		HoTen:       "Admin Hà Phương",
		SoDienThoai: "0123456789",
		VaiTro:      models.RoleAdmin,
	}, adminPassword, log); err != nil {
		return err
	}

	return ensureUser(ctx, userRepo, &models.User{
		HoTen:       "User Test",
		SoDienThoai: "0987654321",
		VaiTro:      models.RoleUser,
	}, userPassword, log)
}

func ensureUser(ctx context.Context, userRepo interfaces.UserRepository, user *models.User, password string, log *logger.Logger) error {
	existing, err := userRepo.GetByPhone(ctx, user.SoDienThoai)
	if err == nil {
		if existing.VaiTro != user.VaiTro {
			if err := userRepo.Update(ctx, existing.ID, map[string]interface{}{"vaiTro": string(user.VaiTro)}); err != nil {
				return fmt.Errorf("failed to repair role for %s: %w", user.SoDienThoai, err)
			}
			log.WithField("phone", user.SoDienThoai).Info("Repaired account role")
		} else {
			log.WithField("phone", user.SoDienThoai).Info("Account already exists")
		}
		return nil
	}
	if !errors.Is(err, interfaces.ErrUserNotFound) {
		return err
	}

	if password == "" {
		return fmt.Errorf("no password configured for %s", user.SoDienThoai)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.MatKhau = string(hash)

	if err := userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create %s: %w", user.SoDienThoai, err)
	}
	log.WithField("phone", user.SoDienThoai).Info("Created account")
	return nil
}

// Chats opens a room between the admin and every other account, with three
// sample messages each. Existing rooms are left alone.
func Chats(ctx context.Context, userRepo interfaces.UserRepository, chatRepo interfaces.ChatRepository, log *logger.Logger) error {
	users, err := userRepo.List(ctx)
	if err != nil {
		return err
	}

	var admin *models.User
	for _, user := range users {
		if user.VaiTro == models.RoleAdmin {
			admin = user
			break
		}
	}
	if admin == nil {
		return errors.New("no admin account found; run the admin seed first")
	}

	for _, other := range users {
		if other.ID == admin.ID {
			continue
		}

		key := models.ParticipantSetKey([]primitive.ObjectID{admin.ID, other.ID})
		if _, err := chatRepo.GetChatByParticipantKey(ctx, key); err == nil {
			log.WithField("phone", other.SoDienThoai).Info("Chat already exists")
			continue
		} else if !errors.Is(err, interfaces.ErrChatNotFound) {
			return err
		}

		chat := &models.Chat{
			Name: admin.HoTen + ", " + other.HoTen,
			Participants: []models.Participant{
				{UserID: admin.ID, Name: admin.HoTen, Role: admin.VaiTro},
				{UserID: other.ID, Name: other.HoTen, Role: other.VaiTro},
			},
			ParticipantKey: key,
			UnreadCount: map[string]int{
				admin.ID.Hex(): 0,
				other.ID.Hex(): 0,
			},
			IsActive: true,
		}
		if err := chatRepo.CreateChat(ctx, chat); err != nil {
			return fmt.Errorf("failed to create chat with %s: %w", other.SoDienThoai, err)
		}

		samples := []*models.Message{
			{
				ChatID: chat.ID, SenderID: admin.ID, SenderName: admin.HoTen, SenderRole: admin.VaiTro,
				Content: fmt.Sprintf("Xin chào %s! Tôi là %s.", other.HoTen, admin.HoTen), MessageType: models.MessageTypeText,
			},
			{
				ChatID: chat.ID, SenderID: other.ID, SenderName: other.HoTen, SenderRole: other.VaiTro,
				Content: fmt.Sprintf("Chào %s! Rất vui được nói chuyện với bạn.", admin.HoTen), MessageType: models.MessageTypeText,
			},
			{
				ChatID: chat.ID, SenderID: admin.ID, SenderName: admin.HoTen, SenderRole: admin.VaiTro,
				Content: "Có gì cần hỗ trợ không?", MessageType: models.MessageTypeText,
			},
		}

		var last *models.Message
		for _, message := range samples {
			if err := chatRepo.CreateMessage(ctx, message); err != nil {
				return fmt.Errorf("failed to create sample message: %w", err)
			}
			last = message
		}

		if err := chatRepo.SetLastMessage(ctx, chat.ID, &models.LastMessage{
			Content:     last.Content,
			SenderID:    last.SenderID,
			SenderName:  last.SenderName,
			Timestamp:   last.CreatedAt,
			MessageType: last.MessageType,
		}); err != nil {
			return err
		}

		log.WithField("chat_id", chat.ID.Hex()).Info("Seeded chat")
	}
	return nil
}

// UpdateRole patches one account's role by phone number.
func UpdateRole(ctx context.Context, userRepo interfaces.UserRepository, phone, role string, log *logger.Logger) error {
	if !models.IsValidRole(role) {
		return fmt.Errorf("invalid role %q", role)
	}

	user, err := userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := userRepo.Update(ctx, user.ID, map[string]interface{}{"vaiTro": role}); err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{"phone": phone, "role": role}).Info("Updated role")
	return nil
}
