package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-exchange-auth/internal/models"
	"github.com/pribylovaa/go-exchange-auth/internal/pkg/log"
	"github.com/pribylovaa/go-exchange-auth/internal/pkg/redact"
	"github.com/pribylovaa/go-exchange-auth/internal/storage"
)

// RegisterUser регистрирует нового пользователя.
//
// Генерирует свежую соль и дайджест пароля, сохраняет запись с дефолтной
// торговой комиссией; ID назначает хранилище. Уникальность username
// обеспечивается ограничением БД — нарушение маппится в ErrUsernameTaken.
func (s *Service) RegisterUser(ctx context.Context, username, password string) (uuid.UUID, error) {
	const op = "service.auth.RegisterUser"

	lg := log.From(ctx)

	if username == "" {
		return uuid.Nil, fmt.Errorf("%s: empty username: %w", op, ErrInvalidParameter)
	}

	salt, digest, err := s.newCredentialSecrets(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		Salt:         salt,
		TradingFee:   s.cfg.DefaultTradingFee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.storage.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", id.String()),
		slog.String("username", redact.Username(username)),
	)

	return id, nil
}

// LoginUser выполняет вход по username+пароль и выпускает пару токенов.
//
// Неизвестное имя и неверный пароль снаружи неразличимы: оба случая
// завершаются ErrInvalidCredentials, причём сравнение дайджестов выполняется
// и при отсутствии пользователя, чтобы время ответа было однородным.
// meta (IP, User-Agent, Referer) попадает только в аудит-лог.
func (s *Service) LoginUser(ctx context.Context, username, password string, meta models.RequestMeta) (*models.TokenPair, error) {
	const op = "service.auth.LoginUser"

	lg := log.From(ctx)

	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			verifyPassword(dummyDigest, dummySalt, password)

			lg.Warn("login_failed",
				slog.String("op", op),
				slog.String("username", redact.Username(username)),
				slog.String("ip", meta.IP),
				slog.String("user_agent", meta.UserAgent),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !verifyPassword(user.PasswordHash, user.Salt, password) {
		lg.Warn("login_failed",
			slog.String("op", op),
			slog.String("username", redact.Username(username)),
			slog.String("ip", meta.IP),
			slog.String("user_agent", meta.UserAgent),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_succeeded",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("ip", meta.IP),
		slog.String("user_agent", meta.UserAgent),
		slog.String("referer", meta.Referer),
	)

	return pair, nil
}

// ValidateToken проверяет access-токен и возвращает user_id и client_id.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (uuid.UUID, string, error) {
	const op = "service.auth.ValidateToken"

	uid, clientID, err := s.validateAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return uid, clientID, nil
}

// UserByID возвращает пользователя по ID (для эндпоинта профиля).
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "service.auth.UserByID"

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
