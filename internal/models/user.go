package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя биржи.
//
// PasswordHash и Salt — пара секретов учётной записи: hex-представление
// HMAC-SHA-512(key=Salt, msg=пароль) и соль, сгенерированная при регистрации.
// Соль уникальна для каждой записи и никогда не переиспользуется;
// пароль в открытом виде нигде не хранится и не логируется.
type User struct {
	// ID — идентификатор, назначается хранилищем при создании.
	ID uuid.UUID
	// Username — уникальное имя пользователя (сравнение чувствительно к регистру).
	Username string
	// PasswordHash — hex-дайджест пароля (HMAC-SHA-512).
	PasswordHash string
	// Salt — hex-соль, ключ HMAC при хэшировании пароля.
	Salt string
	// TradingFee — торговая комиссия аккаунта; при создании берётся дефолт.
	TradingFee float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
