package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"motorist/internal/constants"
	"motorist/internal/service"
	"motorist/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseOrderID достаёт id заказа из URL.
func parseOrderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseListQuery читает search, m, y и kind из строки запроса.
func parseListQuery(r *http.Request) (service.ListQuery, error) {
	q := r.URL.Query()
	lq := service.ListQuery{
		Kind:   q.Get("kind"),
		Search: strings.TrimSpace(q.Get("search")),
	}
	if m := q.Get("m"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil {
			return lq, fmt.Errorf("invalid month %q", m)
		}
		lq.Month = month
	}
	if y := q.Get("y"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return lq, fmt.Errorf("invalid year %q", y)
		}
		lq.Year = year
	}
	return lq, nil
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	lq, err := parseListQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := h.svc.ListOrders(r.Context(), lq)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, "Orders retrieved", orders)
}

// EngineOrders - все заказы на ремонт двигателя, без фильтра по месяцу.
func (h *Handler) EngineOrders(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	orders, err := h.svc.EngineOrders(r.Context(), search)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, "Engine orders retrieved", orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, "Order retrieved", order)
}

// UpdateOrder меняет статус и внутреннюю заметку заказа.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := h.svc.UpdateOrder(r.Context(), id, req.Status, req.InternalNote)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	fields := []any{
		"order_id", id, "old_status", result.Change.OldStatus, "new_status", result.Change.NewStatus,
		"notified", result.Notified,
	}
	if s, ok := sessionFromContext(r.Context()); ok {
		fields = append(fields, "session_ip", s.IP, "session_created_at", s.CreatedAt)
	}
	h.log.Infow("Заказ обновлён из админки", fields...)
	writeJSONSuccess(w, "Order updated", result)
}

// ExportOrders отдаёт список заказов файлом Excel.
func (h *Handler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	lq, err := parseListQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := h.svc.ExportOrders(r.Context(), lq)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", h.svc.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// PhoneQR отдаёт PNG с QR-кодом для звонка клиенту.
func (h *Handler) PhoneQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	png, err := h.svc.PhoneQR(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// StatusOption - пункт выпадающего списка статусов.
type StatusOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
	Class string `json:"class"`
}

// GetStatuses возвращает статусы в порядке выпадающего списка админки.
func (h *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	options := make([]StatusOption, 0, len(constants.OrderStatuses))
	for _, status := range constants.OrderStatuses {
		options = append(options, StatusOption{
			Value: status,
			Text:  utils.GetStatusDisplayName(status),
			Class: utils.GetStatusBadgeClass(status),
		})
	}
	writeJSONSuccess(w, "Statuses retrieved", options)
}
