package formatters

import (
	"fmt"
	"html"
	"strings"

	"motorist/internal/constants"
	"motorist/internal/utils"
)

// FormatStatusChangeForClient форматирует уведомление клиенту о смене статуса
// заказа. Текст размечен HTML.
func FormatStatusChangeForClient(orderID int64, status string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("ℹ️ <b>Статус заказа #%d изменён:</b>\n\n", orderID))
	b.WriteString(html.EscapeString(utils.GetStatusDisplayName(status)))

	switch status {
	case constants.STATUS_DONE:
		b.WriteString("\n\n🎉 Ваш заказ готов!")
	case constants.STATUS_REJECTED:
		b.WriteString("\n\n❌ Заказ отменён.")
	}
	return b.String()
}
