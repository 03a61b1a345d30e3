package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pribylovaa/go-exchange-auth/internal/service"
	"github.com/pribylovaa/go-exchange-auth/internal/transport/http/apierrors"
	"github.com/pribylovaa/go-exchange-auth/internal/transport/http/middleware"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID string `json:"id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type meResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	TradingFee float64 `json:"trading_fee"`
}

// RegisterUser регистрирует пользователя и возвращает назначенный ID.
// Маппинг ошибок: ErrInvalidParameter -> 400; ErrUsernameTaken -> 409;
// прочее -> 500 (без раскрытия деталей).
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("decode: %w", service.ErrInvalidParameter))
		return
	}

	id, err := h.Service.RegisterUser(r.Context(), in.Username, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{ID: id.String()})
}

// LoginUser выполняет вход и возвращает пару токенов.
// Любая ошибка аутентификации отдаётся как единый 401 без уточнения стадии.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("decode: %w", service.ErrInvalidParameter))
		return
	}

	pair, err := h.Service.LoginUser(r.Context(), in.Username, in.Password, requestMeta(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpiresAt,
	})
}

// Me возвращает профиль владельца access-токена.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.AuthTokenFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	uid, _, err := h.Service.ValidateToken(r.Context(), token)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.Service.UserByID(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		TradingFee: user.TradingFee,
	})
}
