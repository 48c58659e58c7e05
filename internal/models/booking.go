package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string
type BookingStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "chua_thanh_toan"
	PaymentStatusPaid   PaymentStatus = "da_thanh_toan"

	BookingStatusConfirmed BookingStatus = "da_xac_nhan"
	BookingStatusCancelled BookingStatus = "da_huy"
)

// Booking is a user's reservation of SoGhe seats on a trip. Route and
// schedule fields are copied from the trip at creation time so the ticket
// stays readable even if the trip is later edited.
type Booking struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID             primitive.ObjectID `json:"userId" bson:"userId"`
	TripID             primitive.ObjectID `json:"tripId" bson:"tripId"`
	HoTen              string             `json:"hoTen" bson:"hoTen"`
	SoDienThoai        string             `json:"soDienThoai" bson:"soDienThoai"`
	DiemDi             string             `json:"diemDi" bson:"diemDi"`
	DiemDen            string             `json:"diemDen" bson:"diemDen"`
	NgayDi             string             `json:"ngayDi" bson:"ngayDi"`
	GioKhoiHanh        string             `json:"gioKhoiHanh" bson:"gioKhoiHanh"`
	SoGhe              int                `json:"soGhe" bson:"soGhe"`
	TongTien           int64              `json:"tongTien" bson:"tongTien"`
	TrangThaiThanhToan PaymentStatus      `json:"trangThaiThanhToan" bson:"trangThaiThanhToan"`
	TrangThai          BookingStatus      `json:"trangThai" bson:"trangThai"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
}
