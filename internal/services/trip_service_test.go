package services

import (
	"context"
	"testing"
	"time"

	"haphuong/internal/repositories/memory"
)

func seedTrips(t *testing.T, svc TripService) {
	t.Helper()
	ctx := context.Background()

	trips := []*CreateTripRequest{
		{
			NhaXe:            "Hà Phương",
			DiemDi:           "Hà Nội",
			DiemDen:          "Sapa",
			ThoiGianKhoiHanh: time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
			SoGhe:            16,
			GiaVe:            250000,
		},
		{
			NhaXe:            "Hà Phương",
			DiemDi:           "Hà Nội",
			DiemDen:          "Đà Nẵng",
			ThoiGianKhoiHanh: time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
			SoGhe:            20,
			GiaVe:            350000,
		},
	}
	for _, trip := range trips {
		if _, err := svc.Create(ctx, trip); err != nil {
			t.Fatalf("create trip error: %v", err)
		}
	}
}

func TestCreateTripBuildsSeatInventory(t *testing.T) {
	svc := NewTripService(memory.NewTripRepository(), newTestLogger(t))

	trip, err := svc.Create(context.Background(), &CreateTripRequest{
		NhaXe:            "Hà Phương",
		DiemDi:           "Hà Nội",
		DiemDen:          "Sapa",
		ThoiGianKhoiHanh: time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
		SoGhe:            16,
		GiaVe:            250000,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if len(trip.DanhSachGhe) != 16 {
		t.Fatalf("seat list length = %d, want 16", len(trip.DanhSachGhe))
	}
	if trip.SoGheTrong != trip.SoGhe {
		t.Fatalf("new trip must start fully available: %d/%d", trip.SoGheTrong, trip.SoGhe)
	}
	if trip.SeatPrice() != 250000 {
		t.Fatalf("seat price = %d, want 250000", trip.SeatPrice())
	}
	if trip.DanhSachGhe[0].TenGhe != "A1" || trip.DanhSachGhe[15].TenGhe != "A16" {
		t.Fatalf("unexpected seat names: %s .. %s", trip.DanhSachGhe[0].TenGhe, trip.DanhSachGhe[15].TenGhe)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	svc := NewTripService(memory.NewTripRepository(), newTestLogger(t))
	seedTrips(t, svc)

	trips, err := svc.Search(context.Background(), &TripSearchRequest{DiemDi: "hà nội"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(trips))
	}

	trips, err = svc.Search(context.Background(), &TripSearchRequest{DiemDen: "sapa"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(trips) != 1 || trips[0].DiemDen != "Sapa" {
		t.Fatalf("destination search failed: %+v", trips)
	}
}

func TestSearchByDepartureDay(t *testing.T) {
	svc := NewTripService(memory.NewTripRepository(), newTestLogger(t))
	seedTrips(t, svc)

	trips, err := svc.Search(context.Background(), &TripSearchRequest{NgayDi: "2026-09-10"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(trips) != 1 || trips[0].DiemDen != "Sapa" {
		t.Fatalf("day filter should match only the Sapa trip, got %+v", trips)
	}

	// An unparsable date is ignored rather than failing the search.
	trips, err = svc.Search(context.Background(), &TripSearchRequest{NgayDi: "10/09/2026"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("unparsable date must be ignored, got %d trips", len(trips))
	}
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	svc := NewTripService(memory.NewTripRepository(), newTestLogger(t))
	seedTrips(t, svc)

	trips, err := svc.Search(context.Background(), &TripSearchRequest{DiemDi: "Cần Thơ"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("expected no results, got %d", len(trips))
	}
}
