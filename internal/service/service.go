// service содержит бизнес-логику auth-сервиса биржи:
// регистрацию пользователей, проверку пароля по соли и дайджесту,
// выпуск/валидацию пары токенов и работу с хранилищем через
// интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Источник времени и источник случайности инжектируются (поля now/rnd),
//     что делает выпуск токенов и генерацию солей детерминируемыми в тестах.
//   - Ошибки возвращаются и далее маппятся HTTP-транспортом на статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"crypto/rand"
	"errors"
	"io"
	"time"

	"github.com/pribylovaa/go-exchange-auth/internal/config"
	"github.com/pribylovaa/go-exchange-auth/internal/storage"
)

var (
	// ErrInvalidParameter — некорректный вход в чистую функцию
	// (неположительная длина соли, пустое имя пользователя).
	// Транспорт: HTTP 400.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь
	// не найден; снаружи эти случаи намеренно неразличимы, чтобы не
	// позволять перебор имён. Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken — имя пользователя уже занято.
	// Транспорт: HTTP 409.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrSigningFailed — пустой секрет подписи или полезная нагрузка
	// токена не кодируется. Ошибка класса "programmer error", ретраев нет.
	// Транспорт: HTTP 500.
	ErrSigningFailed = errors.New("token signing failed")

	// ErrInvalidToken — токен некорректен по формату/подписи.
	// Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк.
	// Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig

	// now и rnd — инжектируемые источники времени и случайности.
	now func() time.Time
	rnd io.Reader
}

// New создаёт новый экземпляр Service с системными часами
// и криптографическим источником случайности.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
		now:     time.Now,
		rnd:     rand.Reader,
	}
}
