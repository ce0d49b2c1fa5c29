package telegram_api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "123456:TEST-token"

type sentMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

type fakeTelegram struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeTelegram) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	prefix := "/bot" + testToken + "/"

	mux.HandleFunc(prefix+"getMe", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Motorist","username":"motorist_bot"}}`)
	})
	mux.HandleFunc(prefix+"sendMessage", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		chatID := r.FormValue("chat_id")
		if chatID == "403" {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`)
			return
		}
		f.mu.Lock()
		f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: r.FormValue("text"), ParseMode: r.FormValue("parse_mode")})
		f.mu.Unlock()
		io.WriteString(w, `{"ok":true,"result":{"message_id":10,"date":0,"chat":{"id":`+chatID+`,"type":"private"},"text":"ok"}}`)
	})
	mux.HandleFunc(prefix+"getFile", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.FormValue("file_id") {
		case "AgAC-photo":
			io.WriteString(w, `{"ok":true,"result":{"file_id":"AgAC-photo","file_unique_id":"u1","file_size":4,"file_path":"photos/file_1.jpg"}}`)
		case "AgAC-gone":
			io.WriteString(w, `{"ok":true,"result":{"file_id":"AgAC-gone","file_unique_id":"u2","file_path":"photos/file_2.jpg"}}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: invalid file_id"}`)
		}
	})
	mux.HandleFunc("/file/bot"+testToken+"/photos/file_1.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		io.WriteString(w, "JPEG")
	})
	return mux
}

func newTestClient(t *testing.T) (*BotClient, *fakeTelegram) {
	t.Helper()
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	client, err := NewBotClient(testToken, srv.URL+"/bot%s/%s", srv.URL+"/file/bot%s/%s", false, zap.NewNop().Sugar())
	require.NoError(t, err)
	return client, fake
}

func TestNewBotClient_EmptyToken(t *testing.T) {
	_, err := NewBotClient("", "http://localhost/bot%s/%s", "http://localhost/file/bot%s/%s", false, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestSendHTMLMessage(t *testing.T) {
	client, fake := newTestClient(t)

	err := client.SendHTMLMessage(555, "ℹ️ <b>Статус заказа #7 изменён:</b>")
	require.NoError(t, err)

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "555", fake.sent[0].ChatID)
	assert.Equal(t, "ℹ️ <b>Статус заказа #7 изменён:</b>", fake.sent[0].Text)
	assert.Equal(t, "HTML", fake.sent[0].ParseMode)
}

func TestSendHTMLMessage_BlockedByUser(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.SendHTMLMessage(403, "текст")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecipientUnavailable))
}

func TestNilClient(t *testing.T) {
	var client *BotClient
	assert.ErrorIs(t, client.SendHTMLMessage(1, "x"), ErrBotUnavailable)

	_, err := client.OpenFile(context.Background(), "AgAC-photo")
	assert.ErrorIs(t, err, ErrBotUnavailable)
}

func TestOpenFile(t *testing.T) {
	client, _ := newTestClient(t)

	file, err := client.OpenFile(context.Background(), "AgAC-photo")
	require.NoError(t, err)
	defer file.Body.Close()

	body, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, "JPEG", string(body))
	assert.Equal(t, "image/jpeg", file.ContentType)
	assert.Equal(t, "file_1.jpg", file.Name)
}

func TestFileURL_ContainsTokenOnlyServerSide(t *testing.T) {
	client, _ := newTestClient(t)

	url, filePath, err := client.FileURL("AgAC-photo")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/file/bot"+testToken+"/photos/file_1.jpg"))
	assert.Equal(t, "photos/file_1.jpg", filePath)
}

func TestOpenFile_NotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.OpenFile(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = client.OpenFile(context.Background(), "AgAC-gone")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", getContentType(".JPG"))
	assert.Equal(t, "image/png", getContentType(".png"))
	assert.Equal(t, "video/mp4", getContentType(".mp4"))
	assert.Equal(t, "application/octet-stream", getContentType(""))
}
