// errors стандартизирует ответы об ошибках HTTP-слоя rfd-service.
// На вход принимает доменную ошибку (сентинелы service, отказ policy),
// на выход даёт:
//   - корректный HTTP-статус;
//   - короткий стабильный code для фронта;
//   - безопасное message без утечки деталей апстримов и хранилища.
//
// Отказ политики (*policy.Denial) — исключение: его причина и есть message,
// она различает случаи (свой черновик, своё RFD на ревью, чужое RFD, вердикт).
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/rfd-tracker/internal/policy"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrRateLimited — превышен лимит запросов пользователя (429).
var ErrRateLimited = stderrors.New("rate limited")

// APIError — единый формат для фронта.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// table — порядок важен: первая совпавшая по errors.Is строка выигрывает.
var table = []mapping{
	{context.Canceled, StatusClientClosedRequest, "canceled", "canceled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
	{service.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "Authentication required"},
	{service.ErrRevoked, http.StatusForbidden, "access_revoked", "Access revoked"},
	{service.ErrDriveAccessRequired, http.StatusUnauthorized, "drive_access_required", "Google Drive access required"},
	{service.ErrNotFound, http.StatusNotFound, "not_found", "RFD not found"},
	{service.ErrInvalidStatus, http.StatusBadRequest, "invalid_status", "Invalid status"},
	{service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", "Invalid request"},
	{service.ErrNoChanges, http.StatusConflict, "no_changes", "No changes to update"},
	{service.ErrAlreadyEndorsed, http.StatusConflict, "already_endorsed", "You have already endorsed this RFD"},
	{service.ErrNotEndorsed, http.StatusConflict, "not_endorsed", "You have not endorsed this RFD"},
	{service.ErrNumberConflict, http.StatusConflict, "number_conflict", "RFD number is taken, please retry"},
	{service.ErrUpstream, http.StatusBadGateway, "upstream_failure", "Upstream service failure"},
	{service.ErrDocumentsUnavailable, http.StatusServiceUnavailable, "unavailable", "Document service is not configured"},
	{service.ErrMissingRefreshToken, http.StatusInternalServerError, "missing_refresh_token", "No refresh token received from identity provider"},
	{ErrRateLimited, http.StatusTooManyRequests, "rate_limited", "Too many requests"},
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - *policy.Denial - 403/permission_denied с причиной отказа в message;
//   - сентинел из таблицы - его статус/код/сообщение;
//   - прочее - 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return internal()
	}

	if reason, ok := policy.ReasonOf(err); ok {
		return http.StatusForbidden, ErrorResponse{
			Error: APIError{Code: "permission_denied", Message: reason},
		}
	}

	for _, m := range table {
		if stderrors.Is(err, m.target) {
			return m.status, ErrorResponse{
				Error: APIError{Code: m.code, Message: m.message},
			}
		}
	}

	return internal()
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func internal() (int, ErrorResponse) {
	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{
			Code:    "internal",
			Message: "internal error",
		},
	}
}
