package constants

import "time"

// Статусы заказа
const (
	STATUS_FILLING    = "filling" // клиент ещё заполняет заявку в боте
	STATUS_NEW        = "new"
	STATUS_DISCUSSION = "discussion"
	STATUS_APPROVED   = "approved"
	STATUS_DONE       = "done"
	STATUS_REJECTED   = "rejected"
)

// OrderStatuses задаёт порядок статусов в выпадающем списке админки.
var OrderStatuses = []string{
	STATUS_FILLING,
	STATUS_NEW,
	STATUS_DISCUSSION,
	STATUS_APPROVED,
	STATUS_DONE,
	STATUS_REJECTED,
}

// StatusDisplayMap - отображаемые названия статусов.
var StatusDisplayMap = map[string]string{
	STATUS_FILLING:    "✍️ Заполняет...",
	STATUS_NEW:        "🔥 НОВЫЙ",
	STATUS_DISCUSSION: "💬 Обсуждение",
	STATUS_APPROVED:   "🛠 В работе",
	STATUS_DONE:       "✅ ГОТОВ",
	STATUS_REJECTED:   "❌ Отказ",
}

// StatusBadgeClassMap - CSS-классы бейджей статусов.
var StatusBadgeClassMap = map[string]string{
	STATUS_FILLING:    "bg-light text-muted border",
	STATUS_NEW:        "bg-success text-white",
	STATUS_DISCUSSION: "bg-info text-dark",
	STATUS_APPROVED:   "bg-primary text-white",
	STATUS_DONE:       "bg-dark text-white",
	STATUS_REJECTED:   "bg-danger text-white",
}

// IsKnownStatus сообщает, известен ли статус админке.
func IsKnownStatus(status string) bool {
	_, ok := StatusDisplayMap[status]
	return ok
}

// Типы заказов
const (
	ORDER_TYPE_ENGINE_REPAIR = "engine_repair"
	ORDER_TYPE_MACHINING     = "machining"
	ORDER_TYPE_STANDARD      = "standard"
)

// Фильтры списка заказов
const (
	KIND_ALL           = "all"
	KIND_ENGINE_REPAIR = "engine_repair"
	KIND_MACHINING     = "machining"
)

var OrderTypeDisplayMap = map[string]string{
	ORDER_TYPE_ENGINE_REPAIR: "🔧 Двигатель",
	ORDER_TYPE_MACHINING:     "⚙️ Станок",
	ORDER_TYPE_STANDARD:      "⚙️ Станок",
}

// Срочность заказа, как её пишет бот
const (
	URGENCY_HIGH   = "Высокая"
	URGENCY_MEDIUM = "Средняя"
	URGENCY_LOW    = "Низкая"
)

var UrgencyBadgeClassMap = map[string]string{
	URGENCY_HIGH:   "bg-danger",
	URGENCY_MEDIUM: "bg-warning text-dark",
	URGENCY_LOW:    "bg-success",
}

// Ключи таблицы bot_config, которые редактируются из админки
const (
	SETTING_WELCOME_MSG = "welcome_msg"
	SETTING_CAMERA_1    = "camera_1_url"
	SETTING_CAMERA_2    = "camera_2_url"
	SETTING_CAMERA_3    = "camera_3_url"
	SETTING_CAMERA_4    = "camera_4_url"
)

// SettingLabels - подписи полей конструктора. Порядок задаёт EditableSettings.
var SettingLabels = map[string]string{
	SETTING_WELCOME_MSG: "Приветствие",
	SETTING_CAMERA_1:    "Камера: Главный цех",
	SETTING_CAMERA_2:    "Камера: Склад запчастей",
	SETTING_CAMERA_3:    "Камера: Входная группа",
	SETTING_CAMERA_4:    "Камера: Зона погрузки",
}

var EditableSettings = []string{
	SETTING_WELCOME_MSG,
	SETTING_CAMERA_1,
	SETTING_CAMERA_2,
	SETTING_CAMERA_3,
	SETTING_CAMERA_4,
}

// CameraSlot связывает ключ настройки с названием камеры.
type CameraSlot struct {
	Key  string
	Name string
}

var CameraSlots = []CameraSlot{
	{Key: SETTING_CAMERA_1, Name: "📹 Главный цех"},
	{Key: SETTING_CAMERA_2, Name: "📹 Склад запчастей"},
	{Key: SETTING_CAMERA_3, Name: "📹 Входная группа"},
	{Key: SETTING_CAMERA_4, Name: "📹 Зона погрузки"},
}

// Сессии админки
const (
	SESSION_COOKIE_NAME = "crm_session"
)

// Месяцы на русском (именительный падеж) для заголовков отчётов.
var MonthMap = map[time.Month]string{
	time.January:   "январь",
	time.February:  "февраль",
	time.March:     "март",
	time.April:     "апрель",
	time.May:       "май",
	time.June:      "июнь",
	time.July:      "июль",
	time.August:    "август",
	time.September: "сентябрь",
	time.October:   "октябрь",
	time.November:  "ноябрь",
	time.December:  "декабрь",
}
