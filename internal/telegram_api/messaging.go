package telegram_api

import (
	"errors"
	"fmt"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// ErrRecipientUnavailable - клиент заблокировал бота или удалил чат.
var ErrRecipientUnavailable = errors.New("получатель недоступен")

// SendHTMLMessage отправляет сообщение с разметкой HTML.
func (bc *BotClient) SendHTMLMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	sent, err := bc.Send(msg)
	if err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 403 {
			return fmt.Errorf("%w: chat_id %d: %s", ErrRecipientUnavailable, chatID, apiErr.Message)
		}
		return fmt.Errorf("ошибка отправки сообщения chat_id %d: %w", chatID, err)
	}
	bc.log.Debugw("Сообщение отправлено", "chat_id", chatID, "message_id", sent.MessageID)
	return nil
}
