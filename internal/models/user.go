package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleAdmin  UserRole = "admin"
	RoleDriver UserRole = "driver"
)

// User is a registered account. The phone number is the login key and is
// unique across the directory. MatKhau holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	HoTen       string             `json:"hoTen" bson:"hoTen" validate:"required"`
	SoDienThoai string             `json:"soDienThoai" bson:"soDienThoai" validate:"required,phone"`
	Email       string             `json:"email" bson:"email"`
	MatKhau     string             `json:"-" bson:"matKhau"`
	VaiTro      UserRole           `json:"vaiTro" bson:"vaiTro"`
	BienSoXe    string             `json:"bienSoXe,omitempty" bson:"bienSoXe,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func IsValidRole(role string) bool {
	switch UserRole(role) {
	case RoleUser, RoleAdmin, RoleDriver:
		return true
	}
	return false
}
