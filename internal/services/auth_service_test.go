package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/repositories/memory"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"
)

const testSecret = "test-secret"

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("logger init error: %v", err)
	}
	return log
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo := memory.NewUserRepository()
	svc := NewAuthService(userRepo, testSecret, newTestLogger(t))
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{
		HoTen:       "Nguyễn Văn A",
		SoDienThoai: "0987654321",
		MatKhau:     "123456",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if reg.Token == "" {
		t.Fatal("expected a token on register")
	}
	if reg.VaiTro != "user" {
		t.Fatalf("expected default role user, got %s", reg.VaiTro)
	}

	login, err := svc.Login(ctx, &LoginRequest{SoDienThoai: "0987654321", MatKhau: "123456"})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if login.ID != reg.ID {
		t.Fatalf("login returned wrong account: %s vs %s", login.ID.Hex(), reg.ID.Hex())
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	userRepo := memory.NewUserRepository()
	svc := NewAuthService(userRepo, testSecret, newTestLogger(t))
	ctx := context.Background()

	first := &RegisterRequest{HoTen: "A", SoDienThoai: "0911222333", MatKhau: "123456"}
	if _, err := svc.Register(ctx, first); err != nil {
		t.Fatalf("first register error: %v", err)
	}

	second := &RegisterRequest{HoTen: "B", SoDienThoai: "0911222333", MatKhau: "abcdef"}
	if _, err := svc.Register(ctx, second); !errors.Is(err, interfaces.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("duplicate register must not mutate the store, got %d users", len(users))
	}
}

func TestLoginFailures(t *testing.T) {
	userRepo := memory.NewUserRepository()
	svc := NewAuthService(userRepo, testSecret, newTestLogger(t))
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{HoTen: "A", SoDienThoai: "0911222333", MatKhau: "123456"}); err != nil {
		t.Fatalf("register error: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{SoDienThoai: "0900000000", MatKhau: "123456"}); !errors.Is(err, interfaces.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown phone, got %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{SoDienThoai: "0911222333", MatKhau: "wrong"}); !errors.Is(err, interfaces.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestLoginTokenClaims(t *testing.T) {
	userRepo := memory.NewUserRepository()
	svc := NewAuthService(userRepo, testSecret, newTestLogger(t))
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{HoTen: "A", SoDienThoai: "0911222333", MatKhau: "123456"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	claims, err := utils.ValidateToken(reg.Token, testSecret)
	if err != nil {
		t.Fatalf("token validation error: %v", err)
	}
	if claims.UserID != reg.ID.Hex() {
		t.Fatalf("token userId = %s, want %s", claims.UserID, reg.ID.Hex())
	}
	if claims.VaiTro != "user" {
		t.Fatalf("token vaiTro = %s, want user", claims.VaiTro)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 24*time.Hour || ttl < 23*time.Hour+59*time.Minute {
		t.Fatalf("token TTL = %v, want 24h", ttl)
	}

	if _, err := utils.ValidateToken(reg.Token, "other-secret"); err == nil {
		t.Fatal("token must not validate under a different secret")
	}
}

func TestUpdateUserRoleAndPhone(t *testing.T) {
	userRepo := memory.NewUserRepository()
	svc := NewAuthService(userRepo, testSecret, newTestLogger(t))
	ctx := context.Background()

	a, err := svc.Register(ctx, &RegisterRequest{HoTen: "A", SoDienThoai: "0911222333", MatKhau: "123456"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if _, err := svc.Register(ctx, &RegisterRequest{HoTen: "B", SoDienThoai: "0911222334", MatKhau: "123456"}); err != nil {
		t.Fatalf("register error: %v", err)
	}

	role := "driver"
	plate := "51A-12345"
	updated, err := svc.UpdateUser(ctx, a.ID, &UpdateUserRequest{VaiTro: &role, BienSoXe: &plate})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if string(updated.VaiTro) != "driver" || updated.BienSoXe != plate {
		t.Fatalf("update not applied: %+v", updated)
	}

	taken := "0911222334"
	if _, err := svc.UpdateUser(ctx, a.ID, &UpdateUserRequest{SoDienThoai: &taken}); !errors.Is(err, interfaces.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken on phone collision, got %v", err)
	}

	bad := "superuser"
	if _, err := svc.UpdateUser(ctx, a.ID, &UpdateUserRequest{VaiTro: &bad}); err == nil {
		t.Fatal("expected error for invalid role")
	}
}
