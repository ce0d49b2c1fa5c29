package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateColumn = 1060

type migration struct {
	name string
	sql  string
}

var postgresTables = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL DEFAULT 0,
		username TEXT,
		full_name TEXT,
		order_type VARCHAR(32) NOT NULL DEFAULT 'standard',
		status VARCHAR(32) NOT NULL DEFAULT 'filling',
		photo_file_id TEXT,
		work_type TEXT,
		dimensions_info TEXT,
		conditions TEXT,
		urgency VARCHAR(32),
		comment TEXT,
		internal_note TEXT,
		car_brand TEXT,
		car_year TEXT,
		engine_issue TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bot_config (
		cfg_key VARCHAR(255) PRIMARY KEY,
		cfg_value TEXT NOT NULL DEFAULT ''
	)`,
}

var postgresMigrations = []migration{
	{name: "orders.internal_note", sql: `ALTER TABLE orders ADD COLUMN IF NOT EXISTS internal_note TEXT`},
	{name: "orders.engine_fields", sql: `ALTER TABLE orders
		ADD COLUMN IF NOT EXISTS car_brand TEXT,
		ADD COLUMN IF NOT EXISTS car_year TEXT,
		ADD COLUMN IF NOT EXISTS engine_issue TEXT`},
}

var postgresIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_orders_status_created_at ON orders(status, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_type ON orders(order_type)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
}

var mysqlTables = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL DEFAULT 0,
		username VARCHAR(255),
		full_name VARCHAR(255),
		order_type VARCHAR(32) NOT NULL DEFAULT 'standard',
		status VARCHAR(32) NOT NULL DEFAULT 'filling',
		photo_file_id TEXT,
		work_type TEXT,
		dimensions_info TEXT,
		conditions TEXT,
		urgency VARCHAR(32),
		comment TEXT,
		internal_note TEXT,
		car_brand VARCHAR(255),
		car_year VARCHAR(16),
		engine_issue TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_orders_status_created_at (status, created_at),
		INDEX idx_orders_order_type (order_type),
		INDEX idx_orders_user_id (user_id)
	) DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bot_config (
		cfg_key VARCHAR(191) PRIMARY KEY,
		cfg_value TEXT NOT NULL
	) DEFAULT CHARSET=utf8mb4`,
}

// В MySQL нет ADD COLUMN IF NOT EXISTS, повторное добавление даёт ошибку 1060.
var mysqlMigrations = []migration{
	{name: "orders.internal_note", sql: `ALTER TABLE orders ADD COLUMN internal_note TEXT`},
	{name: "orders.car_brand", sql: `ALTER TABLE orders ADD COLUMN car_brand VARCHAR(255)`},
	{name: "orders.car_year", sql: `ALTER TABLE orders ADD COLUMN car_year VARCHAR(16)`},
	{name: "orders.engine_issue", sql: `ALTER TABLE orders ADD COLUMN engine_issue TEXT`},
}

// InitSchema создаёт таблицы, применяет миграции и создаёт индексы.
// Повторный вызов безопасен.
func (s *Store) InitSchema(ctx context.Context) error {
	tables, migrations, indexes := postgresTables, postgresMigrations, postgresIndexes
	if s.dialect == DialectMySQL {
		tables, migrations, indexes = mysqlTables, mysqlMigrations, nil
	}

	for _, stmt := range tables {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ошибка создания таблиц: %w", err)
		}
	}
	s.log.Info("Создание таблиц (если не существуют) завершено.")

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			if isDuplicateColumn(err) {
				s.log.Debugw("Миграция пропущена, колонка уже существует", "migration", m.name)
				continue
			}
			return fmt.Errorf("ошибка миграции схемы ('%s'): %w", m.name, err)
		}
		s.log.Debugw("Миграция применена", "migration", m.name)
	}

	// Ошибка отдельного индекса не останавливает запуск.
	for _, stmt := range indexes {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.log.Warnw("Ошибка при создании индекса", "statement", stmt, "error", err)
		}
	}

	s.log.Info("Инициализация базы данных успешно завершена.")
	return nil
}

func isDuplicateColumn(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateColumn
}
