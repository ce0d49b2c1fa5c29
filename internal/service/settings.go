package service

import (
	"context"
	"fmt"
	"strings"

	"motorist/internal/constants"
	"motorist/internal/models"
)

// Settings возвращает редактируемые настройки бота; отсутствующие - пустыми строками.
func (s *AdminService) Settings(ctx context.Context) (map[string]string, error) {
	stored, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(constants.EditableSettings))
	for _, key := range constants.EditableSettings {
		out[key] = stored[key]
	}
	return out, nil
}

// SaveSettings сохраняет значения. Неизвестный ключ отклоняет весь набор.
func (s *AdminService) SaveSettings(ctx context.Context, values map[string]string) error {
	clean := make(map[string]string, len(values))
	for key, value := range values {
		if _, ok := constants.SettingLabels[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		if key != constants.SETTING_WELCOME_MSG {
			value = strings.TrimSpace(value)
		}
		clean[key] = value
	}
	return s.store.UpsertSettings(ctx, clean)
}

// Cameras возвращает камеры цеха с заданными ссылками.
func (s *AdminService) Cameras(ctx context.Context) ([]models.Camera, error) {
	stored, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	cameras := []models.Camera{}
	for _, slot := range constants.CameraSlots {
		url := strings.TrimSpace(stored[slot.Key])
		if url == "" {
			continue
		}
		cameras = append(cameras, models.Camera{Key: slot.Key, Name: slot.Name, URL: url})
	}
	return cameras, nil
}
