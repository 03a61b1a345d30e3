// handlers содержит HTTP-эндпоинты auth-сервиса.
// Здесь выполняется только разбор запросов и маппинг данных/ошибок
// доменного слоя; вся бизнес-логика — в пакете service.
package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-exchange-auth/internal/models"
	"github.com/pribylovaa/go-exchange-auth/internal/service"
)

// Handlers агрегирует зависимости эндпоинтов.
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// requestMeta собирает аудит-контекст запроса для сервисного слоя.
func requestMeta(r *http.Request) models.RequestMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	// За прокси берём первый адрес из X-Forwarded-For.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			xff = xff[:i]
		}
		ip = strings.TrimSpace(xff)
	}

	return models.RequestMeta{
		IP:        ip,
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
	}
}
