package api

// LoginRequest - тело POST /api/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// UpdateOrderRequest - тело POST /api/orders/{id}. Допустимость статуса
// проверяет сервис по constants.OrderStatuses.
type UpdateOrderRequest struct {
	Status       string `json:"status" validate:"required,max=32"`
	InternalNote string `json:"internal_note" validate:"max=2000"`
}

// Ограничения значений настроек бота.
const (
	welcomeMsgRule = "max=4096"
	cameraURLRule  = "omitempty,url,max=1024"
)
