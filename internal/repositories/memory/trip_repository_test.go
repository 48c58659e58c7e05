package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
)

func newSeatTrip(t *testing.T, repo interfaces.TripRepository, seats int) *models.Trip {
	t.Helper()

	trip := &models.Trip{
		NhaXe:            "Hà Phương",
		DiemDi:           "Hà Nội",
		DiemDen:          "Sapa",
		ThoiGianKhoiHanh: time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
		SoGhe:            seats,
		SoGheTrong:       seats,
	}
	if err := repo.Create(context.Background(), trip); err != nil {
		t.Fatalf("create trip error: %v", err)
	}
	return trip
}

func TestReserveSeatsUnderContention(t *testing.T) {
	repo := NewTripRepository()
	trip := newSeatTrip(t, repo, 10)
	ctx := context.Background()

	// 20 workers race for 10 seats; exactly 10 may win.
	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.ReserveSeats(ctx, trip.ID, 1)
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, interfaces.ErrNotEnoughSeats):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 10 {
		t.Fatalf("%d reservations succeeded, want 10", won)
	}

	stored, err := repo.GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("get trip error: %v", err)
	}
	if stored.SoGheTrong != 0 {
		t.Fatalf("soGheTrong = %d, want 0", stored.SoGheTrong)
	}
}

func TestReleaseSeatsNeverExceedsCapacity(t *testing.T) {
	repo := NewTripRepository()
	trip := newSeatTrip(t, repo, 10)
	ctx := context.Background()

	if err := repo.ReserveSeats(ctx, trip.ID, 3); err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if err := repo.ReleaseSeats(ctx, trip.ID, 3); err != nil {
		t.Fatalf("release error: %v", err)
	}

	// Releasing past capacity is a silent no-op.
	if err := repo.ReleaseSeats(ctx, trip.ID, 1); err != nil {
		t.Fatalf("release error: %v", err)
	}

	stored, err := repo.GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("get trip error: %v", err)
	}
	if stored.SoGheTrong != trip.SoGhe {
		t.Fatalf("soGheTrong = %d, want %d", stored.SoGheTrong, trip.SoGhe)
	}
}
