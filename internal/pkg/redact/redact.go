// redact — маскирование чувствительных данных для логов.
// E-mail сохраняет домен (он нужен для разбора отказов allow-list),
// токены и коды авторизации не пишутся вовсе.
package redact

import "strings"

// Email маскирует e-mail: первые две руны локальной части + "***", домен как есть.
// Строка не с ровно одним '@' маскируется полностью.
//
//	"foobar@example.com" -> "fo***@example.com"
//	"ab@ex.com"          -> "***@ex.com"
//	"no-at"              -> "***"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]

	lr := []rune(local)
	if len(lr) > 2 {
		local = string(lr[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token возвращает литерал-заглушку для токена в логах.
func Token() string { return "[REDACTED_TOKEN]" }

// TokenTail оставляет последние 4 символа — достаточно, чтобы сопоставить
// записи логов одной сессии, не раскрывая сам токен.
func TokenTail(s string) string {
	if len(s) <= 8 {
		return Token()
	}

	return "…" + s[len(s)-4:]
}
