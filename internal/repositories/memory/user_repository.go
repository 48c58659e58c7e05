// Package memory holds RWMutex-guarded in-process implementations of the
// store interfaces. They back the demo server and the test suite; the
// production server injects the mongodb implementations instead.
package memory

import (
	"context"
	"sync"
	"time"

	"haphuong/internal/models"
	"haphuong/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() interfaces.UserRepository {
	return &userRepository{
		users: make(map[primitive.ObjectID]*models.User),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.SoDienThoai == user.SoDienThoai {
			return interfaces.ErrPhoneTaken
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, interfaces.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.SoDienThoai == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, interfaces.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrUserNotFound
	}

	for field, value := range updates {
		str, _ := value.(string)
		switch field {
		case "hoTen":
			user.HoTen = str
		case "soDienThoai":
			for uid, u := range r.users {
				if uid != id && u.SoDienThoai == str {
					return interfaces.ErrPhoneTaken
				}
			}
			user.SoDienThoai = str
		case "email":
			user.Email = str
		case "matKhau":
			user.MatKhau = str
		case "vaiTro":
			user.VaiTro = models.UserRole(str)
		case "bienSoXe":
			user.BienSoXe = str
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}
