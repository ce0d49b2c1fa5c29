package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"motorist/internal/db"
	"motorist/internal/models"
	"motorist/internal/telegram_api"
)

type fakeStore struct {
	mu       sync.Mutex
	orders   map[int64]models.Order
	filters  []db.OrderFilter
	settings map[string]string
	counts   map[time.Time]int
	since    []time.Time
	countErr error
	upserted map[string]string
}

func newFakeStore(orders ...models.Order) *fakeStore {
	fs := &fakeStore{
		orders:   make(map[int64]models.Order),
		settings: make(map[string]string),
		counts:   make(map[time.Time]int),
	}
	for _, o := range orders {
		fs.orders[o.ID] = o
	}
	return fs
}

func (fs *fakeStore) ListOrders(_ context.Context, f db.OrderFilter) ([]models.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.filters = append(fs.filters, f)
	var out []models.Order
	for _, o := range fs.orders {
		out = append(out, o)
	}
	return out, nil
}

func (fs *fakeStore) GetOrder(_ context.Context, id int64) (models.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	o, ok := fs.orders[id]
	if !ok {
		return models.Order{}, db.ErrOrderNotFound
	}
	return o, nil
}

func (fs *fakeStore) UpdateOrderStatus(_ context.Context, id int64, status, note string) (models.StatusChange, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	o, ok := fs.orders[id]
	if !ok {
		return models.StatusChange{}, db.ErrOrderNotFound
	}
	change := models.StatusChange{OrderID: id, UserID: o.UserID, OldStatus: o.Status, NewStatus: status}
	o.Status = status
	o.InternalNote = models.NewNullString(note)
	fs.orders[id] = o
	return change, nil
}

func (fs *fakeStore) CountOrdersSince(_ context.Context, since time.Time) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.since = append(fs.since, since)
	if fs.countErr != nil {
		return 0, fs.countErr
	}
	return fs.counts[since], nil
}

func (fs *fakeStore) GetSettings(context.Context) (map[string]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make(map[string]string, len(fs.settings))
	for k, v := range fs.settings {
		out[k] = v
	}
	return out, nil
}

func (fs *fakeStore) UpsertSettings(_ context.Context, values map[string]string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.upserted = values
	for k, v := range values {
		fs.settings[k] = v
	}
	return nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (fn *fakeNotifier) SendHTMLMessage(chatID int64, text string) error {
	if fn.err != nil {
		return fn.err
	}
	fn.sent = append(fn.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

type fakeFiles struct {
	opened []string
}

func (ff *fakeFiles) OpenFile(_ context.Context, fileID string) (*telegram_api.RemoteFile, error) {
	if fileID == "missing" {
		return nil, telegram_api.ErrFileNotFound
	}
	ff.opened = append(ff.opened, fileID)
	return &telegram_api.RemoteFile{
		Body:        io.NopCloser(strings.NewReader("JPEG:" + fileID)),
		ContentType: "image/jpeg",
		Name:        fileID + ".jpg",
	}, nil
}

var errBoom = errors.New("boom")
