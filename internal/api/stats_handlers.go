package api

import "net/http"

// GetStats - количество заказов за неделю, месяц, квартал и год.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, "Stats retrieved", stats)
}
