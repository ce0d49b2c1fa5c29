package service

import (
	"context"
	"fmt"
	"time"

	"motorist/internal/constants"
	"motorist/internal/db"
	"motorist/internal/formatters"
	"motorist/internal/models"
	"motorist/internal/phone"
	"motorist/internal/utils"
)

const detailsWidth = 60

// OrderView - заказ в том виде, в каком его показывает админка. Телефон
// распознаётся здесь один раз для списка и для карточки.
type OrderView struct {
	models.Order
	Phone        string `json:"phone"`
	PhoneLink    string `json:"phone_link"`
	StatusText   string `json:"status_text"`
	StatusClass  string `json:"status_class"`
	UrgencyClass string `json:"urgency_class"`
	TypeText     string `json:"type_text"`
	IsEngine     bool   `json:"is_engine"`
	Details      string `json:"details"`
	CreatedText  string `json:"created_text"`
	PhotoCount   int    `json:"photo_count"`
	HasPhotos    bool   `json:"has_photos"`

	strategy phone.Strategy
}

// ListQuery - параметры списка заказов. Нулевые Month и Year означают
// текущий месяц; AllTime отключает фильтр по дате.
type ListQuery struct {
	Kind    string
	Search  string
	Month   int
	Year    int
	AllTime bool
}

// UpdateResult - итог изменения заказа.
type UpdateResult struct {
	Change   models.StatusChange `json:"change"`
	Notified bool                `json:"notified"`
}

func (s *AdminService) buildView(o models.Order) OrderView {
	comment := o.Comment.OrEmpty()
	phoneNumber, strategy := phone.Detect(comment)

	details := o.Comment.OrEmpty()
	if o.WorkType.Valid {
		details = o.WorkType.String
	}

	photos := o.PhotoIDs()
	return OrderView{
		Order:        o,
		Phone:        phoneNumber,
		PhoneLink:    phone.TelLink(phoneNumber),
		StatusText:   utils.GetStatusDisplayName(o.Status),
		StatusClass:  utils.GetStatusBadgeClass(o.Status),
		UrgencyClass: utils.GetUrgencyBadgeClass(o.Urgency.OrEmpty()),
		TypeText:     utils.GetOrderTypeDisplayName(o.OrderType),
		IsEngine:     utils.IsEngineOrder(o.OrderType),
		Details:      utils.TruncateText(details, detailsWidth),
		CreatedText:  utils.FormatOrderDate(o.CreatedAt, s.loc),
		PhotoCount:   len(photos),
		HasPhotos:    o.PhotoFileID.Valid && len(o.PhotoFileID.String) > 5,
		strategy:     strategy,
	}
}

func (s *AdminService) filterFor(q ListQuery) (db.OrderFilter, error) {
	kind := q.Kind
	switch kind {
	case "":
		kind = constants.KIND_ALL
	case constants.KIND_ALL, constants.KIND_ENGINE_REPAIR, constants.KIND_MACHINING:
	default:
		return db.OrderFilter{}, fmt.Errorf("%w: %q", ErrInvalidKind, q.Kind)
	}

	f := db.OrderFilter{Kind: kind, Search: q.Search}
	if q.AllTime {
		return f, nil
	}

	now := s.now().In(s.loc)
	month, year := q.Month, q.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return db.OrderFilter{}, fmt.Errorf("%w: %d.%d", ErrInvalidPeriod, month, year)
	}

	f.From = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	f.To = f.From.AddDate(0, 1, 0)
	return f, nil
}

// countExtraction учитывает в метрике распознавание телефона для показанного заказа.
// Заказы без комментария не учитываются.
func (s *AdminService) countExtraction(v OrderView) {
	if v.Comment.OrEmpty() != "" {
		s.metrics.PhoneExtracted(string(v.strategy))
	}
}

// ListOrders возвращает заказы за месяц (по умолчанию текущий) с распознанными телефонами.
func (s *AdminService) ListOrders(ctx context.Context, q ListQuery) ([]OrderView, error) {
	views, err := s.listViews(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		s.countExtraction(v)
	}
	return views, nil
}

func (s *AdminService) listViews(ctx context.Context, q ListQuery) ([]OrderView, error) {
	f, err := s.filterFor(q)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, s.buildView(o))
	}
	return views, nil
}

// EngineOrders возвращает все заказы на ремонт двигателя без фильтра по дате.
func (s *AdminService) EngineOrders(ctx context.Context, search string) ([]OrderView, error) {
	return s.ListOrders(ctx, ListQuery{Kind: constants.KIND_ENGINE_REPAIR, Search: search, AllTime: true})
}

// GetOrder возвращает карточку заказа.
func (s *AdminService) GetOrder(ctx context.Context, id int64) (OrderView, error) {
	v, err := s.orderView(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	s.countExtraction(v)
	return v, nil
}

func (s *AdminService) orderView(ctx context.Context, id int64) (OrderView, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return s.buildView(o), nil
}

// UpdateOrder сохраняет статус и заметку. Если статус изменился, клиенту
// уходит уведомление; ошибка отправки только логируется.
func (s *AdminService) UpdateOrder(ctx context.Context, id int64, status, note string) (UpdateResult, error) {
	if !constants.IsKnownStatus(status) {
		return UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	change, err := s.store.UpdateOrderStatus(ctx, id, status, note)
	if err != nil {
		return UpdateResult{}, err
	}

	result := UpdateResult{Change: change}
	if !change.Changed() {
		return result, nil
	}
	if change.UserID == 0 {
		s.log.Warnw("У заказа нет chat_id клиента, уведомление не отправлено", "order_id", id)
		return result, nil
	}
	result.Notified = s.notifyClient(change)
	return result, nil
}

func (s *AdminService) notifyClient(change models.StatusChange) bool {
	if s.notifier == nil {
		s.log.Warnw("Бот не настроен, уведомление клиенту не отправлено", "order_id", change.OrderID)
		s.metrics.NotificationResult("skipped")
		return false
	}

	text := formatters.FormatStatusChangeForClient(change.OrderID, change.NewStatus)
	if err := s.notifier.SendHTMLMessage(change.UserID, text); err != nil {
		s.log.Errorw("Ошибка отправки уведомления клиенту",
			"order_id", change.OrderID, "chat_id", change.UserID, "error", err)
		s.metrics.NotificationResult("failed")
		return false
	}

	s.log.Infow("Клиент уведомлён о смене статуса",
		"order_id", change.OrderID, "status", change.NewStatus)
	s.metrics.NotificationResult("sent")
	return true
}
