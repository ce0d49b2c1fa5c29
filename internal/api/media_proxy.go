package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// PhotoLink - ссылка на фото заказа через прокси.
type PhotoLink struct {
	N   int    `json:"n"`
	URL string `json:"url"`
}

// ListPhotos возвращает ссылки прокси для всех фото заказа.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	ids, err := h.svc.PhotoIDs(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	links := make([]PhotoLink, 0, len(ids))
	for i := range ids {
		links = append(links, PhotoLink{N: i + 1, URL: fmt.Sprintf("/api/orders/%d/photos/%d", id, i+1)})
	}
	writeJSONSuccess(w, "Photos retrieved", links)
}

// PhotoProxy скачивает фото с серверов Telegram и отдаёт его браузеру.
// Токен бота в ответ не попадает.
func (h *Handler) PhotoProxy(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid photo number")
		return
	}

	file, err := h.svc.OpenPhoto(r.Context(), id, n)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	defer file.Body.Close()

	w.Header().Set("Content-Type", file.ContentType)
	// Кэшировать на 1 день
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Header().Set("Expires", time.Now().Add(24*time.Hour).UTC().Format(http.TimeFormat))
	if file.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file.Body); err != nil {
		h.log.Warnw("PhotoProxy: передача фото прервана", "order_id", id, "n", n, "error", err)
	}
}
