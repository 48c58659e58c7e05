package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/repositories/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBookingFixture(t *testing.T) (BookingService, interfaces.TripRepository, *models.Trip) {
	t.Helper()

	tripRepo := memory.NewTripRepository()
	tripSvc := NewTripService(tripRepo, newTestLogger(t))

	trip, err := tripSvc.Create(context.Background(), &CreateTripRequest{
		NhaXe:            "Hà Phương",
		DiemDi:           "Hà Nội",
		DiemDen:          "Sapa",
		ThoiGianKhoiHanh: time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
		SoGhe:            4,
		GiaVe:            250000,
	})
	if err != nil {
		t.Fatalf("create trip error: %v", err)
	}

	svc := NewBookingService(memory.NewBookingRepository(), tripRepo, newTestLogger(t))
	return svc, tripRepo, trip
}

func TestCreateBookingReservesSeatsAndPrices(t *testing.T) {
	svc, tripRepo, trip := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, &CreateBookingRequest{
		UserID:      primitive.NewObjectID(),
		TripID:      trip.ID,
		HoTen:       "Nguyễn Văn A",
		SoDienThoai: "0987654321",
		SoGhe:       3,
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if booking.TongTien != 750000 {
		t.Fatalf("tongTien = %d, want 750000", booking.TongTien)
	}
	if booking.DiemDi != "Hà Nội" || booking.DiemDen != "Sapa" {
		t.Fatalf("route not copied from trip: %+v", booking)
	}
	if booking.NgayDi != "2026-09-10" || booking.GioKhoiHanh != "08:00" {
		t.Fatalf("schedule not copied from trip: %s %s", booking.NgayDi, booking.GioKhoiHanh)
	}
	if booking.TrangThai != models.BookingStatusConfirmed || booking.TrangThaiThanhToan != models.PaymentStatusUnpaid {
		t.Fatalf("unexpected statuses: %+v", booking)
	}

	stored, err := tripRepo.GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("get trip error: %v", err)
	}
	if stored.SoGheTrong != 1 {
		t.Fatalf("soGheTrong = %d, want 1", stored.SoGheTrong)
	}
}

func TestCreateBookingInsufficientSeats(t *testing.T) {
	svc, tripRepo, trip := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateBookingRequest{TripID: trip.ID, SoGhe: 5})
	if !errors.Is(err, interfaces.ErrNotEnoughSeats) {
		t.Fatalf("expected ErrNotEnoughSeats, got %v", err)
	}

	stored, err := tripRepo.GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("get trip error: %v", err)
	}
	if stored.SoGheTrong != 4 {
		t.Fatalf("failed booking must not consume seats, soGheTrong = %d", stored.SoGheTrong)
	}

	bookings, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("expected no bookings, got %d", len(bookings))
	}
}

func TestCreateBookingUnknownTrip(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.Create(context.Background(), &CreateBookingRequest{TripID: primitive.NewObjectID(), SoGhe: 1})
	if !errors.Is(err, interfaces.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestCancelBookingRestoresSeats(t *testing.T) {
	svc, tripRepo, trip := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, &CreateBookingRequest{TripID: trip.ID, SoGhe: 2})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if err := svc.Cancel(ctx, booking.ID); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	stored, err := tripRepo.GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("get trip error: %v", err)
	}
	if stored.SoGheTrong != trip.SoGhe {
		t.Fatalf("cancel must restore seats: %d/%d", stored.SoGheTrong, trip.SoGhe)
	}

	if err := svc.Cancel(ctx, booking.ID); !errors.Is(err, interfaces.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound on second cancel, got %v", err)
	}
}
