package services

import (
	"context"
	"fmt"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/utils"
	"haphuong/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripService interface {
	List(ctx context.Context) ([]*models.Trip, error)
	Get(ctx context.Context, tripID primitive.ObjectID) (*models.Trip, error)
	Search(ctx context.Context, request *TripSearchRequest) ([]*models.Trip, error)
	Create(ctx context.Context, request *CreateTripRequest) (*models.Trip, error)
}

type tripService struct {
	tripRepo interfaces.TripRepository
	logger   *logger.Logger
}

type TripSearchRequest struct {
	DiemDi  string `json:"diemDi" form:"diemDi"`
	DiemDen string `json:"diemDen" form:"diemDen"`
	NgayDi  string `json:"ngayDi" form:"ngayDi"`
}

type CreateTripRequest struct {
	NhaXe            string    `json:"nhaXe" validate:"required"`
	DiemDi           string    `json:"diemDi" validate:"required"`
	DiemDen          string    `json:"diemDen" validate:"required"`
	ThoiGianKhoiHanh time.Time `json:"thoiGianKhoiHanh" validate:"required"`
	SoGhe            int       `json:"soGhe" validate:"required,min=1"`
	GiaVe            int64     `json:"giaVe" validate:"required,min=0"`
	TaiXe            string    `json:"taiXe"`
	BienSoXe         string    `json:"bienSoXe"`
}

func NewTripService(tripRepo interfaces.TripRepository, log *logger.Logger) TripService {
	return &tripService{
		tripRepo: tripRepo,
		logger:   log,
	}
}

func (s *tripService) List(ctx context.Context) ([]*models.Trip, error) {
	return s.tripRepo.List(ctx)
}

func (s *tripService) Get(ctx context.Context, tripID primitive.ObjectID) (*models.Trip, error) {
	return s.tripRepo.GetByID(ctx, tripID)
}

func (s *tripService) Search(ctx context.Context, request *TripSearchRequest) ([]*models.Trip, error) {
	filter := &interfaces.TripSearch{
		DiemDi:  request.DiemDi,
		DiemDen: request.DiemDen,
	}

	if request.NgayDi != "" {
		// Dates arrive as "2006-01-02"; anything else is ignored rather
		// than failing the whole search.
		if day, err := time.Parse("2006-01-02", request.NgayDi); err == nil {
			filter.NgayDi = &day
		} else {
			s.logger.WithField("ngayDi", request.NgayDi).Warn("Ignoring unparsable departure date")
		}
	}

	return s.tripRepo.Search(ctx, filter)
}

func (s *tripService) Create(ctx context.Context, request *CreateTripRequest) (*models.Trip, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	seats := make([]models.Seat, request.SoGhe)
	for i := range seats {
		seats[i] = models.Seat{
			TenGhe:    fmt.Sprintf("A%d", i+1),
			TrangThai: models.SeatStatusEmpty,
			GiaVe:     request.GiaVe,
		}
	}

	trip := &models.Trip{
		NhaXe:            request.NhaXe,
		DiemDi:           request.DiemDi,
		DiemDen:          request.DiemDen,
		ThoiGianKhoiHanh: request.ThoiGianKhoiHanh,
		SoGhe:            request.SoGhe,
		SoGheTrong:       request.SoGhe,
		DanhSachGhe:      seats,
		TaiXe:            request.TaiXe,
		BienSoXe:         request.BienSoXe,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"trip_id": trip.ID.Hex(),
		"route":   trip.DiemDi + " - " + trip.DiemDen,
	}).Info("Trip created")
	return trip, nil
}
