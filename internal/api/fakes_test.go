package api

import (
	"context"
	"io"
	"sort"
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
	settings map[string]string
}

func newFakeStore(orders ...models.Order) *fakeStore {
	fs := &fakeStore{orders: make(map[int64]models.Order), settings: make(map[string]string)}
	for _, o := range orders {
		fs.orders[o.ID] = o
	}
	return fs
}

func (fs *fakeStore) ListOrders(_ context.Context, _ db.OrderFilter) ([]models.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]models.Order, 0, len(fs.orders))
	for _, o := range fs.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
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

func (fs *fakeStore) CountOrdersSince(context.Context, time.Time) (int, error) {
	return 3, nil
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
	for k, v := range values {
		fs.settings[k] = v
	}
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (fn *fakeNotifier) SendHTMLMessage(_ int64, text string) error {
	fn.mu.Lock()
	defer fn.mu.Unlock()
	fn.sent = append(fn.sent, text)
	return nil
}

type fakeFiles struct{}

func (fakeFiles) OpenFile(_ context.Context, fileID string) (*telegram_api.RemoteFile, error) {
	body := "JPEG:" + fileID
	return &telegram_api.RemoteFile{
		Body:        io.NopCloser(strings.NewReader(body)),
		ContentType: "image/jpeg",
		Size:        int64(len(body)),
		Name:        fileID + ".jpg",
	}, nil
}
