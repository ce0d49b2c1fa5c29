package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"motorist/internal/constants"
	"motorist/internal/models"
)

const orderColumns = `id, user_id, username, full_name, order_type, status, photo_file_id,
	work_type, dimensions_info, conditions, urgency, comment, internal_note,
	car_brand, car_year, engine_issue, created_at`

// OrderFilter - условия выборки списка заказов. Нулевые From/To означают
// выборку без ограничения по дате.
type OrderFilter struct {
	Kind   string
	Search string
	From   time.Time
	To     time.Time
}

// searchColumns - поля, по которым ищет строка поиска админки.
var searchColumns = []string{"full_name", "username", "comment", "car_brand", "engine_issue"}

// ListOrders возвращает заказы без черновиков, новые сверху.
func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	where := []string{"status <> ?"}
	args := []any{constants.STATUS_FILLING}

	switch f.Kind {
	case constants.KIND_ENGINE_REPAIR:
		// Старые версии бота писали тип "engine".
		where = append(where, "order_type IN (?, ?)")
		args = append(args, constants.ORDER_TYPE_ENGINE_REPAIR, "engine")
	case constants.KIND_MACHINING:
		where = append(where, "order_type IN (?, ?)")
		args = append(args, constants.ORDER_TYPE_STANDARD, constants.ORDER_TYPE_MACHINING)
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		op := "ILIKE"
		if s.dialect == DialectMySQL {
			op = "LIKE"
		}
		pattern := likePattern(search)
		conds := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			conds = append(conds, col+" "+op+" ?")
			args = append(args, pattern)
		}
		where = append(where, "("+strings.Join(conds, " OR ")+")")
	}

	if !f.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "created_at < ?")
		args = append(args, f.To)
	}

	query := s.db.Rebind("SELECT " + orderColumns + " FROM orders WHERE " +
		strings.Join(where, " AND ") + " ORDER BY id DESC")

	orders := []models.Order{}
	if err := s.db.SelectContext(ctx, &orders, query, args...); err != nil {
		s.log.Errorw("ListOrders: ошибка выборки заказов", "kind", f.Kind, "error", err)
		return nil, fmt.Errorf("ошибка выборки заказов: %w", err)
	}
	return orders, nil
}

// GetOrder извлекает заказ по его ID.
func (s *Store) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	var order models.Order
	query := s.db.Rebind("SELECT " + orderColumns + " FROM orders WHERE id = ?")
	if err := s.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order, ErrOrderNotFound
		}
		s.log.Errorw("GetOrder: ошибка получения заказа", "order_id", id, "error", err)
		return order, fmt.Errorf("ошибка получения заказа #%d: %w", id, err)
	}
	return order, nil
}

// UpdateOrderStatus меняет статус и внутреннюю заметку заказа. Прежний статус
// читается в той же транзакции, чтобы уведомление соответствовало записанному.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status, note string) (change models.StatusChange, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return change, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current struct {
		UserID int64  `db:"user_id"`
		Status string `db:"status"`
	}
	err = tx.GetContext(ctx, &current, tx.Rebind("SELECT user_id, status FROM orders WHERE id = ? FOR UPDATE"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return change, ErrOrderNotFound
		}
		return change, fmt.Errorf("ошибка чтения статуса заказа #%d: %w", id, err)
	}

	_, err = tx.ExecContext(ctx, tx.Rebind("UPDATE orders SET status = ?, internal_note = ? WHERE id = ?"), status, note, id)
	if err != nil {
		return change, fmt.Errorf("ошибка обновления заказа #%d: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return change, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	s.log.Infow("Заказ обновлён", "order_id", id, "old_status", current.Status, "new_status", status)
	return models.StatusChange{
		OrderID:   id,
		UserID:    current.UserID,
		OldStatus: current.Status,
		NewStatus: status,
	}, nil
}

// CountOrdersSince считает заказы (без черновиков), созданные не раньше since.
func (s *Store) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	query := s.db.Rebind("SELECT COUNT(*) FROM orders WHERE created_at >= ? AND status <> ?")
	if err := s.db.GetContext(ctx, &count, query, since, constants.STATUS_FILLING); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта заказов: %w", err)
	}
	return count, nil
}
