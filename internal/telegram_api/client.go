package telegram_api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"go.uber.org/zap"
)

// ErrBotUnavailable возвращается, когда клиент не инициализирован (нет токена).
var ErrBotUnavailable = errors.New("BotClient или его API не инициализирован")

// BotClient представляет собой обертку для Telegram Bot API.
// Админка только отправляет уведомления и скачивает фото заказов,
// обновления бота здесь не читаются.
type BotClient struct {
	api          *tgbotapi.BotAPI
	fileEndpoint string
	httpClient   *http.Client
	log          *zap.SugaredLogger
	Debug        bool
}

// NewBotClient авторизуется в Telegram (getMe) и возвращает клиента.
// apiEndpoint и fileEndpoint - шаблоны вида https://api.telegram.org/bot%s/%s.
func NewBotClient(token, apiEndpoint, fileEndpoint string, debug bool, log *zap.SugaredLogger) (*BotClient, error) {
	if token == "" {
		return nil, fmt.Errorf("токен Telegram API не предоставлен")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}
	api.Debug = debug

	log.Infow("Авторизован как аккаунт бота", "username", api.Self.UserName)

	return &BotClient{
		api:          api,
		fileEndpoint: fileEndpoint,
		httpClient:   httpClient,
		log:          log,
		Debug:        debug,
	}, nil
}

// Send отправляет сообщение через BotClient.
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if bc == nil || bc.api == nil {
		return tgbotapi.Message{}, ErrBotUnavailable
	}
	if bc.Debug {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			bc.log.Debugf("Отправка сообщения: ChatID=%d, Text='%.50s...'", msg.ChatID, msg.Text)
		} else {
			bc.log.Debugf("Отправка/запрос типа %T", c)
		}
	}
	return bc.api.Send(c)
}
