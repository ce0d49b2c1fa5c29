package db

import (
	"context"
	"fmt"
	"sort"

	"motorist/internal/models"
)

// GetSettings возвращает все пары из bot_config.
func (s *Store) GetSettings(ctx context.Context) (map[string]string, error) {
	var rows []models.Setting
	if err := s.db.SelectContext(ctx, &rows, "SELECT cfg_key, cfg_value FROM bot_config"); err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

// UpsertSettings записывает все значения в одной транзакции.
func (s *Store) UpsertSettings(ctx context.Context, values map[string]string) (err error) {
	if len(values) == 0 {
		return nil
	}

	query := "INSERT INTO bot_config (cfg_key, cfg_value) VALUES (?, ?) ON CONFLICT (cfg_key) DO UPDATE SET cfg_value = EXCLUDED.cfg_value"
	if s.dialect == DialectMySQL {
		query = "INSERT INTO bot_config (cfg_key, cfg_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE cfg_value = VALUES(cfg_value)"
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	query = tx.Rebind(query)
	for _, k := range keys {
		if _, err = tx.ExecContext(ctx, query, k, values[k]); err != nil {
			return fmt.Errorf("ошибка сохранения настройки %s: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	s.log.Infow("Настройки сохранены", "keys", keys)
	return nil
}
