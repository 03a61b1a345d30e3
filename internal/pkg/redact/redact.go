// redact прячет чувствительные значения перед записью в логи.
package redact

// Username оставляет первые два символа имени, остальное маскирует.
func Username(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
