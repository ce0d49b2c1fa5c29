package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager создаёт и проверяет сессии администраторов.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	log   *zap.SugaredLogger
}

func NewManager(store Store, ttl time.Duration, log *zap.SugaredLogger) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now, log: log}
}

// TTL возвращает срок жизни новой сессии.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create открывает новую сессию со случайным идентификатором.
func (m *Manager) Create(ctx context.Context, ip string) (Session, error) {
	now := m.now()
	s := Session{
		ID:        uuid.NewString(),
		IP:        ip,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, fmt.Errorf("ошибка создания сессии: %w", err)
	}
	m.log.Infow("Создана сессия администратора", "ip", ip, "expires_at", s.ExpiresAt)
	return s, nil
}

// Validate возвращает действующую сессию. Истёкшая сессия удаляется.
func (m *Manager) Validate(ctx context.Context, id string) (Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Session{}, ErrSessionNotFound
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.log.Warnw("Не удалось удалить истёкшую сессию", "error", err)
		}
		return Session{}, ErrSessionExpired
	}
	return s, nil
}

// Destroy удаляет сессию. Неизвестный id не считается ошибкой.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}
