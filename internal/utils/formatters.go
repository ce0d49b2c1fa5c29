package utils

import (
	"strings"
	"time"
	"unicode/utf8"

	"motorist/internal/constants"
)

// TruncateText обрезает текст до width символов (рун), включая многоточие.
func TruncateText(text string, width int) string {
	const marker = "..."
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	keep := width - utf8.RuneCountInString(marker)
	if keep <= 0 {
		return string([]rune(marker)[:width])
	}
	return string([]rune(text)[:keep]) + marker
}

// FormatOrderDate форматирует дату создания заказа для таблицы: "02.01 15:04".
func FormatOrderDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02.01 15:04")
}

// IsEngineOrder сообщает, относится ли заказ к ремонту двигателя.
// Ранние версии бота писали тип "engine".
func IsEngineOrder(orderType string) bool {
	return orderType == constants.ORDER_TYPE_ENGINE_REPAIR || orderType == "engine"
}

// GetOrderTypeDisplayName возвращает название типа заказа для админки.
func GetOrderTypeDisplayName(orderType string) string {
	if IsEngineOrder(orderType) {
		return constants.OrderTypeDisplayMap[constants.ORDER_TYPE_ENGINE_REPAIR]
	}
	if name, ok := constants.OrderTypeDisplayMap[orderType]; ok {
		return name
	}
	return constants.OrderTypeDisplayMap[constants.ORDER_TYPE_STANDARD]
}

// GetStatusDisplayName возвращает текст статуса; неизвестный статус показывается как есть.
func GetStatusDisplayName(status string) string {
	if text, ok := constants.StatusDisplayMap[status]; ok {
		return text
	}
	return status
}

// GetStatusBadgeClass возвращает CSS-класс бейджа статуса.
func GetStatusBadgeClass(status string) string {
	if class, ok := constants.StatusBadgeClassMap[status]; ok {
		return class
	}
	return "bg-secondary"
}

// GetUrgencyBadgeClass возвращает CSS-класс бейджа срочности или "" для пустой.
func GetUrgencyBadgeClass(urgency string) string {
	if class, ok := constants.UrgencyBadgeClassMap[urgency]; ok {
		return class
	}
	if urgency == "" {
		return ""
	}
	return "bg-secondary"
}

// GetRussianMonthName возвращает название месяца на русском.
func GetRussianMonthName(m time.Month) string {
	if name, ok := constants.MonthMap[m]; ok {
		return name
	}
	return strings.ToLower(m.String())
}
