// Package service содержит бизнес-логику админки заказов: выборки с
// распознанным телефоном, смену статуса с уведомлением клиента, статистику,
// настройки бота и доступ к фото заказов.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"motorist/internal/db"
	"motorist/internal/metrics"
	"motorist/internal/models"
	"motorist/internal/telegram_api"
)

var (
	ErrInvalidStatus     = errors.New("недопустимый статус заказа")
	ErrInvalidPeriod     = errors.New("недопустимый период")
	ErrInvalidKind       = errors.New("недопустимый тип заказов")
	ErrUnknownSetting    = errors.New("неизвестная настройка")
	ErrPhotoNotFound     = errors.New("фото не найдено")
	ErrPhotosUnavailable = errors.New("фото недоступны: бот не настроен")
	ErrNoPhone           = errors.New("в заказе не найден телефон")
)

// OrderStore - хранилище заказов и настроек (реализуется db.Store).
type OrderStore interface {
	ListOrders(ctx context.Context, f db.OrderFilter) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status, note string) (models.StatusChange, error)
	CountOrdersSince(ctx context.Context, since time.Time) (int, error)
	GetSettings(ctx context.Context) (map[string]string, error)
	UpsertSettings(ctx context.Context, values map[string]string) error
}

// Notifier отправляет сообщения клиентам в Telegram.
type Notifier interface {
	SendHTMLMessage(chatID int64, text string) error
}

// FileOpener скачивает файлы Telegram по file_id.
type FileOpener interface {
	OpenFile(ctx context.Context, fileID string) (*telegram_api.RemoteFile, error)
}

// Dependencies - зависимости AdminService. Notifier и Files могут быть nil,
// если токен бота не задан.
type Dependencies struct {
	Store    OrderStore
	Notifier Notifier
	Files    FileOpener
	Metrics  *metrics.Collectors
	Location *time.Location
	Log      *zap.SugaredLogger
	Now      func() time.Time
}

// AdminService - операции админ-панели.
type AdminService struct {
	store    OrderStore
	notifier Notifier
	files    FileOpener
	metrics  *metrics.Collectors
	loc      *time.Location
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewAdminService(deps Dependencies) *AdminService {
	s := &AdminService{
		store:    deps.Store,
		notifier: deps.Notifier,
		files:    deps.Files,
		metrics:  deps.Metrics,
		loc:      deps.Location,
		log:      deps.Log,
		now:      deps.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	return s
}

// Location возвращает часовой пояс, в котором считаются периоды и даты.
func (s *AdminService) Location() *time.Location {
	return s.loc
}

// Now возвращает текущее время в часовом поясе сервиса.
func (s *AdminService) Now() time.Time {
	return s.now().In(s.loc)
}
