package interfaces

import (
	"context"

	"haphuong/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	List(ctx context.Context) ([]*models.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
