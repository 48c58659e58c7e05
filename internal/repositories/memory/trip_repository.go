package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type tripRepository struct {
	mu    sync.RWMutex
	trips map[primitive.ObjectID]*models.Trip
}

func NewTripRepository() interfaces.TripRepository {
	return &tripRepository{
		trips: make(map[primitive.ObjectID]*models.Trip),
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()

	clone := cloneTrip(trip)
	r.trips[trip.ID] = clone
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, interfaces.ErrTripNotFound
	}
	return cloneTrip(trip), nil
}

func (r *tripRepository) List(ctx context.Context) ([]*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trips := make([]*models.Trip, 0, len(r.trips))
	for _, trip := range r.trips {
		trips = append(trips, cloneTrip(trip))
	}
	sortTripsByDeparture(trips)
	return trips, nil
}

func (r *tripRepository) Search(ctx context.Context, filter *interfaces.TripSearch) ([]*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*models.Trip
	for _, trip := range r.trips {
		if !matchesSearch(trip, filter) {
			continue
		}
		trips = append(trips, cloneTrip(trip))
	}
	sortTripsByDeparture(trips)
	return trips, nil
}

func (r *tripRepository) ReserveSeats(ctx context.Context, id primitive.ObjectID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return interfaces.ErrTripNotFound
	}
	if trip.SoGheTrong < n {
		return interfaces.ErrNotEnoughSeats
	}

	trip.SoGheTrong -= n
	trip.UpdatedAt = time.Now()
	return nil
}

func (r *tripRepository) ReleaseSeats(ctx context.Context, id primitive.ObjectID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return interfaces.ErrTripNotFound
	}
	if trip.SoGheTrong+n > trip.SoGhe {
		return nil
	}

	trip.SoGheTrong += n
	trip.UpdatedAt = time.Now()
	return nil
}

func matchesSearch(trip *models.Trip, filter *interfaces.TripSearch) bool {
	if filter.DiemDi != "" && !strings.Contains(strings.ToLower(trip.DiemDi), strings.ToLower(filter.DiemDi)) {
		return false
	}
	if filter.DiemDen != "" && !strings.Contains(strings.ToLower(trip.DiemDen), strings.ToLower(filter.DiemDen)) {
		return false
	}
	if filter.NgayDi != nil {
		day := filter.NgayDi.Truncate(24 * time.Hour)
		if trip.ThoiGianKhoiHanh.Before(day) || !trip.ThoiGianKhoiHanh.Before(day.Add(24*time.Hour)) {
			return false
		}
	}
	return true
}

func sortTripsByDeparture(trips []*models.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].ThoiGianKhoiHanh.Before(trips[j].ThoiGianKhoiHanh)
	})
}

func cloneTrip(trip *models.Trip) *models.Trip {
	clone := *trip
	clone.DanhSachGhe = make([]models.Seat, len(trip.DanhSachGhe))
	copy(clone.DanhSachGhe, trip.DanhSachGhe)
	return &clone
}
