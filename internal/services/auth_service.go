package services

import (
	"context"
	"fmt"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, userID primitive.ObjectID, request *UpdateUserRequest) (*models.User, error)
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

type RegisterRequest struct {
	HoTen       string `json:"hoTen" validate:"required"`
	SoDienThoai string `json:"soDienThoai" validate:"required,phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	MatKhau     string `json:"matKhau" validate:"required,min=6"`
}

type LoginRequest struct {
	SoDienThoai string `json:"soDienThoai" validate:"required"`
	MatKhau     string `json:"matKhau" validate:"required"`
}

// UpdateUserRequest carries the admin-editable profile fields. Nil pointers
// mean "leave unchanged".
type UpdateUserRequest struct {
	HoTen       *string `json:"hoTen"`
	SoDienThoai *string `json:"soDienThoai"`
	Email       *string `json:"email"`
	MatKhau     *string `json:"matKhau"`
	VaiTro      *string `json:"vaiTro"`
	BienSoXe    *string `json:"bienSoXe"`
}

type AuthResponse struct {
	ID          primitive.ObjectID `json:"_id"`
	HoTen       string             `json:"hoTen"`
	SoDienThoai string             `json:"soDienThoai"`
	Email       string             `json:"email,omitempty"`
	VaiTro      models.UserRole    `json:"vaiTro"`
	Token       string             `json:"token"`
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.MatKhau), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		HoTen:       request.HoTen,
		SoDienThoai: request.SoDienThoai,
		Email:       request.Email,
		MatKhau:     string(hashed),
		VaiTro:      models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID.Hex()).Info("User registered")
	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByPhone(ctx, request.SoDienThoai)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.MatKhau), []byte(request.MatKhau)); err != nil {
		return nil, interfaces.ErrWrongPassword
	}

	s.logger.WithUserID(user.ID.Hex()).Info("User logged in")
	return s.buildAuthResponse(user)
}

func (s *authService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *authService) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateUser(ctx context.Context, userID primitive.ObjectID, request *UpdateUserRequest) (*models.User, error) {
	updates := make(map[string]interface{})

	if request.HoTen != nil {
		updates["hoTen"] = *request.HoTen
	}
	if request.SoDienThoai != nil {
		updates["soDienThoai"] = *request.SoDienThoai
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.MatKhau != nil && *request.MatKhau != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*request.MatKhau), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["matKhau"] = string(hashed)
	}
	if request.VaiTro != nil {
		if !models.IsValidRole(*request.VaiTro) {
			return nil, fmt.Errorf("invalid role %q", *request.VaiTro)
		}
		updates["vaiTro"] = *request.VaiTro
	}
	if request.BienSoXe != nil {
		updates["bienSoXe"] = *request.BienSoXe
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, string(user.VaiTro), s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		ID:          user.ID,
		HoTen:       user.HoTen,
		SoDienThoai: user.SoDienThoai,
		Email:       user.Email,
		VaiTro:      user.VaiTro,
		Token:       token,
	}, nil
}
