package models

import "time"

// TokenPair — пара токенов, выдаваемая при успешном входе.
//
// Описание:
//   - AccessToken — короткоживущий JWT (HS512) с клеймами user_id, client_id и jti;
//   - RefreshToken — долгоживущий JWT (HS512) с единственным клеймом id,
//     равным jti access-токена; подписан отдельным секретом;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
//
// Пара нигде не сохраняется на сервере: валидность определяется только
// подписью и сроком действия.
type TokenPair struct {
	// AccessToken — JWT для авторизации запросов.
	AccessToken string
	// RefreshToken — JWT для последующего обновления пары.
	RefreshToken string
	// AccessExpiresAt — время истечения действия access-токена (UTC).
	AccessExpiresAt time.Time
}
