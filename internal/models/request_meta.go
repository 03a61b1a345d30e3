package models

// RequestMeta — контекст запроса на вход: пишется в аудит-лог,
// на результат аутентификации не влияет.
type RequestMeta struct {
	// IP — адрес клиента (RemoteAddr или X-Forwarded-For).
	IP string
	// UserAgent — заголовок User-Agent.
	UserAgent string
	// Referer — заголовок Referer.
	Referer string
}
