package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// defaultSaltLength — длина соли в hex-символах по умолчанию.
const defaultSaltLength = 20

// Фиктивная пара секретов: при отсутствии пользователя сравнение всё равно
// выполняется, чтобы время ответа не выдавало существование имени.
var (
	dummySalt   = strings.Repeat("0", defaultSaltLength)
	dummyDigest = hashPassword("", dummySalt)
)

// generateSalt генерирует случайную hex-строку длиной length символов.
// Байт энтропии — ceil(length/2): каждый байт кодируется двумя символами.
func generateSalt(r io.Reader, length int) (string, error) {
	const op = "service.hasher.generateSalt"

	if length <= 0 {
		return "", fmt.Errorf("%s: salt length %d: %w", op, length, ErrInvalidParameter)
	}

	buf := make([]byte, (length+1)/2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return hex.EncodeToString(buf)[:length], nil
}

// hashPassword вычисляет hex(HMAC-SHA-512(key=salt, msg=password)).
// Детерминирована: одинаковые (password, salt) дают одинаковый дайджест.
// Пустой пароль допустим — политика сложности не входит в контракт хэша.
func hashPassword(password, salt string) string {
	mac := hmac.New(sha512.New, []byte(salt))
	mac.Write([]byte(password))

	return hex.EncodeToString(mac.Sum(nil))
}

// newCredentialSecrets генерирует свежую соль и дайджест пароля.
// Используется только при регистрации: соль уникальна для каждой записи.
func (s *Service) newCredentialSecrets(password string) (salt, digest string, err error) {
	const op = "service.hasher.newCredentialSecrets"

	length := s.cfg.SaltLength
	if length == 0 {
		length = defaultSaltLength
	}

	salt, err = generateSalt(s.rnd, length)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return salt, hashPassword(password, salt), nil
}

// verifyPassword пересчитывает дайджест кандидата и сравнивает с сохранённым
// за фиксированное время, не раскрывая позицию расхождения.
func verifyPassword(digest, salt, password string) bool {
	got := hashPassword(password, salt)

	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}
