package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *DatabaseConfig
}

type DatabaseConfig struct {
	URI            string
	Database       string
	MaxPoolSize    int
	MinPoolSize    int
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

func NewMongoDB(config *DatabaseConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.URI).
		SetMaxPoolSize(uint64(config.MaxPoolSize)).
		SetMinPoolSize(uint64(config.MinPoolSize)).
		SetSocketTimeout(config.SocketTimeout).
		SetConnectTimeout(config.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	database := client.Database(config.Database)

	return &MongoDB{
		Client:   client,
		Database: database,
		Config:   config,
	}, nil
}

// EnsureIndexes creates the indexes the queries and uniqueness rules rely
// on. Safe to call on every startup.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "soDienThoai", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := m.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	trips := []mongo.IndexModel{
		{Keys: bson.D{{Key: "thoiGianKhoiHanh", Value: 1}}},
		{Keys: bson.D{{Key: "diemDi", Value: 1}, {Key: "diemDen", Value: 1}}},
	}
	if _, err := m.Collection("trips").Indexes().CreateMany(ctx, trips); err != nil {
		return err
	}

	bookings := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := m.Collection("bookings").Indexes().CreateMany(ctx, bookings); err != nil {
		return err
	}

	chats := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "participantKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "participants.userId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}
	if _, err := m.Collection("chats").Indexes().CreateMany(ctx, chats); err != nil {
		return err
	}

	messages := []mongo.IndexModel{
		{Keys: bson.D{{Key: "chatId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := m.Collection("messages").Indexes().CreateMany(ctx, messages); err != nil {
		return err
	}

	return nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *MongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}
