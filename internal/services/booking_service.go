package services

import (
	"context"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	Create(ctx context.Context, request *CreateBookingRequest) (*models.Booking, error)
	List(ctx context.Context) ([]*models.Booking, error)
	Cancel(ctx context.Context, bookingID primitive.ObjectID) error
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	tripRepo    interfaces.TripRepository
	logger      *logger.Logger
}

type CreateBookingRequest struct {
	UserID      primitive.ObjectID `json:"userId"`
	TripID      primitive.ObjectID `json:"tripId" validate:"required"`
	HoTen       string             `json:"hoTen"`
	SoDienThoai string             `json:"soDienThoai"`
	DiemDi      string             `json:"diemDi"`
	DiemDen     string             `json:"diemDen"`
	NgayDi      string             `json:"ngayDi"`
	GioKhoiHanh string             `json:"gioKhoiHanh"`
	SoGhe       int                `json:"soGhe" validate:"required,min=1"`
	TongTien    int64              `json:"tongTien"`
}

func NewBookingService(bookingRepo interfaces.BookingRepository, tripRepo interfaces.TripRepository, log *logger.Logger) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		logger:      log,
	}
}

func (s *bookingService) Create(ctx context.Context, request *CreateBookingRequest) (*models.Booking, error) {
	trip, err := s.tripRepo.GetByID(ctx, request.TripID)
	if err != nil {
		return nil, err
	}
	if request.SoGhe < 1 {
		return nil, interfaces.ErrNotEnoughSeats
	}

	// Reserve before inserting so two concurrent bookings can never
	// oversell the trip.
	if err := s.tripRepo.ReserveSeats(ctx, trip.ID, request.SoGhe); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:             request.UserID,
		TripID:             trip.ID,
		HoTen:              request.HoTen,
		SoDienThoai:        request.SoDienThoai,
		DiemDi:             request.DiemDi,
		DiemDen:            request.DiemDen,
		NgayDi:             request.NgayDi,
		GioKhoiHanh:        request.GioKhoiHanh,
		SoGhe:              request.SoGhe,
		TongTien:           request.TongTien,
		TrangThaiThanhToan: models.PaymentStatusUnpaid,
		TrangThai:          models.BookingStatusConfirmed,
	}

	if booking.DiemDi == "" {
		booking.DiemDi = trip.DiemDi
	}
	if booking.DiemDen == "" {
		booking.DiemDen = trip.DiemDen
	}
	if booking.NgayDi == "" {
		booking.NgayDi = trip.ThoiGianKhoiHanh.Format("2006-01-02")
	}
	if booking.GioKhoiHanh == "" {
		booking.GioKhoiHanh = trip.ThoiGianKhoiHanh.Format("15:04")
	}
	if booking.TongTien == 0 {
		booking.TongTien = trip.SeatPrice() * int64(request.SoGhe)
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Hand the seats back so a failed insert does not leak inventory.
		if releaseErr := s.tripRepo.ReleaseSeats(ctx, trip.ID, request.SoGhe); releaseErr != nil {
			s.logger.WithError(releaseErr).WithField("trip_id", trip.ID.Hex()).Error("Failed to release seats after booking error")
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"trip_id":    trip.ID.Hex(),
		"so_ghe":     booking.SoGhe,
	}).Info("Booking created")
	return booking, nil
}

func (s *bookingService) List(ctx context.Context) ([]*models.Booking, error) {
	return s.bookingRepo.List(ctx)
}

func (s *bookingService) Cancel(ctx context.Context, bookingID primitive.ObjectID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}

	if err := s.tripRepo.ReleaseSeats(ctx, booking.TripID, booking.SoGhe); err != nil {
		// The booking is already gone; log and move on rather than
		// surfacing a failure the caller cannot act on.
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"booking_id": bookingID.Hex(),
			"trip_id":    booking.TripID.Hex(),
		}).Error("Failed to release seats on cancel")
	}

	s.logger.WithField("booking_id", bookingID.Hex()).Info("Booking cancelled")
	return nil
}
