package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingRepository struct {
	mu       sync.RWMutex
	bookings map[primitive.ObjectID]*models.Booking
}

func NewBookingRepository() interfaces.BookingRepository {
	return &bookingRepository{
		bookings: make(map[primitive.ObjectID]*models.Booking),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()

	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, interfaces.ErrBookingNotFound
	}
	clone := *booking
	return &clone, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*models.Booking, 0, len(r.bookings))
	for _, booking := range r.bookings {
		clone := *booking
		bookings = append(bookings, &clone)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return interfaces.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}
