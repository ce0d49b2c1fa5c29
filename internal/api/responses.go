package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"motorist/internal/db"
	"motorist/internal/service"
	"motorist/internal/telegram_api"
)

// jsonResponse - вспомогательная структура для стандартного ответа API
type jsonResponse struct {
	Status  string `json:"status"` // "success" или "error"
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrOrderNotFound):
		writeJSONError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrPhotoNotFound), errors.Is(err, telegram_api.ErrFileNotFound):
		writeJSONError(w, http.StatusNotFound, "Photo not found")
	case errors.Is(err, service.ErrNoPhone):
		writeJSONError(w, http.StatusNotFound, "No phone number in order comment")
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidKind),
		errors.Is(err, service.ErrUnknownSetting):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPhotosUnavailable), errors.Is(err, telegram_api.ErrBotUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, "Telegram bot is not configured")
	default:
		h.log.Errorw("Ошибка обработки запроса", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage собирает читаемое сообщение из ошибок validator.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return "Invalid fields: " + strings.Join(parts, ", ")
}
