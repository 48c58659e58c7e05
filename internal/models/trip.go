package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SeatStatus string

const (
	SeatStatusEmpty SeatStatus = "trong"
	SeatStatusHeld  SeatStatus = "dang_giu"
	SeatStatusSold  SeatStatus = "da_ban"
)

type Seat struct {
	TenGhe    string     `json:"tenGhe" bson:"tenGhe"`
	TrangThai SeatStatus `json:"trangThai" bson:"trangThai"`
	GiaVe     int64      `json:"giaVe" bson:"giaVe"`
}

// Trip is a scheduled bus run with a fixed seat inventory.
// Invariants: SoGhe == len(DanhSachGhe) and 0 <= SoGheTrong <= SoGhe.
type Trip struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	NhaXe            string             `json:"nhaXe" bson:"nhaXe"`
	DiemDi           string             `json:"diemDi" bson:"diemDi" validate:"required"`
	DiemDen          string             `json:"diemDen" bson:"diemDen" validate:"required"`
	ThoiGianKhoiHanh time.Time          `json:"thoiGianKhoiHanh" bson:"thoiGianKhoiHanh"`
	SoGhe            int                `json:"soGhe" bson:"soGhe"`
	SoGheTrong       int                `json:"soGheTrong" bson:"soGheTrong"`
	DanhSachGhe      []Seat             `json:"danhSachGhe" bson:"danhSachGhe"`
	TaiXe            string             `json:"taiXe" bson:"taiXe"`
	BienSoXe         string             `json:"bienSoXe" bson:"bienSoXe"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SeatPrice returns the fare of the first seat. Trips are priced uniformly
// per seat, so this is the trip's ticket price.
func (t *Trip) SeatPrice() int64 {
	if len(t.DanhSachGhe) == 0 {
		return 0
	}
	return t.DanhSachGhe[0].GiaVe
}
