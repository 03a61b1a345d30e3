package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-exchange-auth/internal/models"
	"github.com/pribylovaa/go-exchange-auth/internal/pkg/log"
)

// accessClaims — полезная нагрузка access-токена.
// jti (RegisteredClaims.ID) связывает access-токен с refresh-токеном пары.
type accessClaims struct {
	UserID   string `json:"user_id"`
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// refreshClaims — полезная нагрузка refresh-токена: только id пары.
// Такая форма позволяет будущей системе отзыва инвалидировать оба токена
// по одному ключу, не заглядывая в access-токен.
type refreshClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// issueTokenPair выпускает пару access+refresh токенов.
//
// Инварианты:
//   - jti access-токена равен клейму id refresh-токена;
//   - client_id генерируется независимо от jti;
//   - токены подписываются HS512 разными секретами, компрометация одного
//     секрета не позволяет подделать токен другого типа.
func (s *Service) issueTokenPair(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	const op = "service.token.issueTokenPair"

	lg := log.From(ctx)

	if s.cfg.AccessTokenSecret == "" || s.cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("%s: empty signing secret: %w", op, ErrSigningFailed)
	}

	jti, err := uuid.NewRandomFromReader(s.rnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	clientID, err := uuid.NewRandomFromReader(s.rnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()

	access := jwt.NewWithClaims(jwt.SigningMethodHS512, accessClaims{
		UserID:   userID.String(),
		ClientID: clientID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	})

	accessSigned, err := access.SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrSigningFailed)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshClaims{
		ID: jti.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenTTL)),
		},
	})

	refreshSigned, err := refresh.SignedString([]byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		lg.Error("refresh_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrSigningFailed)
	}

	return &models.TokenPair{
		AccessToken:     accessSigned,
		RefreshToken:    refreshSigned,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// validateAccessToken валидирует access-токен и возвращает user_id и client_id.
func (s *Service) validateAccessToken(tokenStr string) (uuid.UUID, string, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS512 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.AccessTokenSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, claims.ClientID, nil
}

// validateRefreshToken валидирует refresh-токен и возвращает id пары (jti).
func (s *Service) validateRefreshToken(tokenStr string) (string, error) {
	const op = "service.token.validateRefreshToken"

	token, err := jwt.ParseWithClaims(tokenStr, &refreshClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS512 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.RefreshTokenSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*refreshClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.ID, nil
}
