package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tripRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewTripRepository(db *mongo.Database, cache services.CacheService) interfaces.TripRepository {
	return &tripRepository{
		collection: db.Collection("trips"),
		cache:      cache,
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	r.invalidateListCache(ctx)
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) List(ctx context.Context) ([]*models.Trip, error) {
	// Try cache first
	if r.cache != nil {
		var trips []*models.Trip
		if err := r.cache.Get(ctx, tripListCacheKey, &trips); err == nil {
			return trips, nil
		}
	}

	trips, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(ctx, tripListCacheKey, trips, 5*time.Minute)
	}
	return trips, nil
}

func (r *tripRepository) Search(ctx context.Context, filter *interfaces.TripSearch) ([]*models.Trip, error) {
	query := bson.M{}

	if filter.DiemDi != "" {
		query["diemDi"] = bson.M{"$regex": regexp.QuoteMeta(filter.DiemDi), "$options": "i"}
	}
	if filter.DiemDen != "" {
		query["diemDen"] = bson.M{"$regex": regexp.QuoteMeta(filter.DiemDen), "$options": "i"}
	}
	if filter.NgayDi != nil {
		day := filter.NgayDi.Truncate(24 * time.Hour)
		query["thoiGianKhoiHanh"] = bson.M{
			"$gte": day,
			"$lt":  day.Add(24 * time.Hour),
		}
	}

	return r.find(ctx, query)
}

func (r *tripRepository) ReserveSeats(ctx context.Context, id primitive.ObjectID, n int) error {
	// Conditional decrement: the filter guarantees the counter never goes
	// negative even under concurrent bookings.
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "soGheTrong": bson.M{"$gte": n}},
		bson.M{
			"$inc": bson.M{"soGheTrong": -n},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reserve seats: %w", err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return interfaces.ErrNotEnoughSeats
	}

	r.invalidateListCache(ctx)
	return nil
}

func (r *tripRepository) ReleaseSeats(ctx context.Context, id primitive.ObjectID, n int) error {
	// Capped at the trip's seat count so a double release cannot oversell.
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "$expr": bson.M{"$lte": bson.A{bson.M{"$add": bson.A{"$soGheTrong", n}}, "$soGhe"}}},
		bson.M{
			"$inc": bson.M{"soGheTrong": n},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return nil
	}

	r.invalidateListCache(ctx)
	return nil
}

func (r *tripRepository) find(ctx context.Context, query bson.M) ([]*models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "thoiGianKhoiHanh", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*models.Trip
	for cursor.Next(ctx) {
		var trip models.Trip
		if err := cursor.Decode(&trip); err != nil {
			return nil, fmt.Errorf("failed to decode trip: %w", err)
		}
		trips = append(trips, &trip)
	}
	return trips, nil
}

const tripListCacheKey = "trips:all"

func (r *tripRepository) invalidateListCache(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, tripListCacheKey)
	}
}
