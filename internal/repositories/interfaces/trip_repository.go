package interfaces

import (
	"context"
	"time"

	"haphuong/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripSearch carries the catalog filters. Empty strings match everything;
// NgayDi, when set, matches the departure calendar day.
type TripSearch struct {
	DiemDi  string
	DiemDen string
	NgayDi  *time.Time
}

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)
	List(ctx context.Context) ([]*models.Trip, error)
	Search(ctx context.Context, filter *TripSearch) ([]*models.Trip, error)

	// ReserveSeats atomically decrements the empty-seat counter; it fails
	// with ErrNotEnoughSeats when fewer than n seats remain, so two
	// concurrent bookings cannot both take the last seats.
	ReserveSeats(ctx context.Context, id primitive.ObjectID, n int) error
	ReleaseSeats(ctx context.Context, id primitive.ObjectID, n int) error
}
