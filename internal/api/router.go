package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"motorist/internal/metrics"
	"motorist/internal/service"
	"motorist/internal/session"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Service       *service.AdminService
	Sessions      *session.Manager
	AdminPassword string
	SecureCookies bool
	Metrics       *metrics.Collectors
	Log           *zap.SugaredLogger
}

// Handler - обработчики JSON API админки.
type Handler struct {
	svc           *service.AdminService
	sessions      *session.Manager
	adminPassword string
	secureCookies bool
	metrics       *metrics.Collectors
	log           *zap.SugaredLogger
	validate      *validator.Validate
}

func NewHandler(deps ApiDependencies) *Handler {
	return &Handler{
		svc:           deps.Service,
		sessions:      deps.Sessions,
		adminPassword: deps.AdminPassword,
		secureCookies: deps.SecureCookies,
		metrics:       deps.Metrics,
		log:           deps.Log,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r chi.Router, deps ApiDependencies) {
	h := NewHandler(deps)

	r.Post("/api/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.Sessions, deps.Log))

		r.Post("/api/logout", h.Logout)

		r.Get("/api/orders", h.ListOrders)
		r.Get("/api/orders/export.xlsx", h.ExportOrders)
		r.Get("/api/orders/{id:[0-9]+}", h.GetOrder)
		r.Post("/api/orders/{id:[0-9]+}", h.UpdateOrder)
		r.Get("/api/orders/{id:[0-9]+}/photos", h.ListPhotos)
		r.Get("/api/orders/{id:[0-9]+}/photos/{n:[0-9]+}", h.PhotoProxy)
		r.Get("/api/orders/{id:[0-9]+}/phone.png", h.PhoneQR)

		r.Get("/api/statuses", h.GetStatuses)
		r.Get("/api/engine-orders", h.EngineOrders)
		r.Get("/api/stats", h.GetStats)

		r.Get("/api/settings", h.GetSettings)
		r.Post("/api/settings", h.SaveSettings)
		r.Get("/api/cameras", h.GetCameras)
	})
}
