package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-exchange-auth/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

var (
	// ErrNotFound — пользователь не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности username.
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
//
// Контракт с вызывающей стороной: вставка атомарна (частично записанных
// пользователей не бывает), уникальность username обеспечивается
// ограничением самого хранилища.
type UserStorage interface {
	// SaveUser создает нового пользователя и возвращает назначенный хранилищем ID.
	SaveUser(ctx context.Context, user *models.User) (uuid.UUID, error)
	// UserByUsername находит пользователя по имени (с учётом регистра).
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	Close()
}
