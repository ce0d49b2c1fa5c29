package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"motorist/internal/constants"
	"motorist/internal/service"
)

// SettingField - поле конструктора бота.
type SettingField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.Settings(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	fields := make([]SettingField, 0, len(constants.EditableSettings))
	for _, key := range constants.EditableSettings {
		fields = append(fields, SettingField{Key: key, Label: constants.SettingLabels[key], Value: values[key]})
	}
	writeJSONSuccess(w, "Settings retrieved", fields)
}

// SaveSettings принимает объект {ключ: значение}. Неизвестные ключи отклоняются.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(values) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rule := cameraURLRule
		if key == constants.SETTING_WELCOME_MSG {
			rule = welcomeMsgRule
		} else if _, ok := constants.SettingLabels[key]; !ok {
			h.writeServiceError(w, r, fmt.Errorf("%w: %s", service.ErrUnknownSetting, key))
			return
		}
		if err := h.validate.Var(strings.TrimSpace(values[key]), rule); err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid value for %s", key))
			return
		}
	}

	if err := h.svc.SaveSettings(r.Context(), values); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.log.Infow("Настройки бота обновлены", "keys", keys)
	writeJSONSuccess(w, "Settings saved", nil)
}

// GetCameras - камеры цеха с заданными ссылками.
func (h *Handler) GetCameras(w http.ResponseWriter, r *http.Request) {
	cameras, err := h.svc.Cameras(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, "Cameras retrieved", cameras)
}
