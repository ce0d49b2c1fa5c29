package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"motorist/internal/api"
	"motorist/internal/config"
	"motorist/internal/db"
	"motorist/internal/logger"
	"motorist/internal/metrics"
	"motorist/internal/service"
	"motorist/internal/session"
	"motorist/internal/telegram_api"
)

const serviceName = "motorist-crm"

func main() {
	// --- Блок инициализации ---
	envErr := godotenv.Load()

	log := logger.Init(serviceName, os.Getenv("ENV"))
	defer logger.SafeSync(log)

	if envErr != nil {
		log.Warn("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	if err := run(log); err != nil {
		log.Errorw("Критическая ошибка", "error", err)
		logger.SafeSync(log)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg, err := config.LoadConfig(log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, cfg.Location, log)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	log.Infow("База данных готова", "dialect", store.Dialect())

	reg := prometheus.NewRegistry()
	col, err := metrics.NewCollectors(reg)
	if err != nil {
		return err
	}

	deps := service.Dependencies{
		Store:    store,
		Metrics:  col,
		Location: cfg.Location,
		Log:      log,
	}
	// Без токена админка работает, но не шлёт уведомления и не показывает фото.
	if cfg.TelegramToken != "" {
		bot, err := telegram_api.NewBotClient(cfg.TelegramToken, cfg.TelegramAPIEndpoint,
			cfg.TelegramFileEndpoint, cfg.AppEnv == "debug", log)
		if err != nil {
			log.Errorw("Не удалось инициализировать Telegram бота, уведомления отключены", "error", err)
		} else {
			deps.Notifier = bot
			deps.Files = bot
		}
	}
	svc := service.NewAdminService(deps)

	sessionStore, closeSessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()
	sessions := session.NewManager(sessionStore, cfg.SessionTTL, log)

	// --- Настройка роутера и Middleware ---
	router := chi.NewRouter()

	// ГЛОБАЛЬНЫЕ MIDDLEWARES ДОЛЖНЫ ИДТИ ПЕРЕД api.SetupRoutes
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.RequestLogger(log, col))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.SetupRoutes(router, api.ApiDependencies{
		Service:       svc,
		Sessions:      sessions,
		AdminPassword: cfg.AdminPassword,
		SecureCookies: cfg.AppEnv == "production",
		Metrics:       col,
		Log:           log,
	})

	router.Method(http.MethodGet, "/metrics", metrics.Handler(reg))
	router.Method(http.MethodGet, "/health", metrics.HealthHandler(func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return err
		}
		if p, ok := sessionStore.(interface{ Ping(context.Context) error }); ok {
			return p.Ping(ctx)
		}
		return nil
	}))

	router.Get("/", http.RedirectHandler("/webapp/", http.StatusMovedPermanently).ServeHTTP)
	router.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Статика клиента админки
	workDir, _ := os.Getwd()
	FileServer(router, "/webapp", http.Dir(filepath.Join(workDir, "webapp")))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("Запуск HTTP-сервера админки", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Получен сигнал остановки, завершаем работу...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("HTTP-сервер остановлен")
	return nil
}

// newSessionStore выбирает хранилище сессий: Redis, если задан REDIS_URL, иначе память процесса.
func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("Сессии хранятся в памяти процесса")
		return session.NewMemoryStore(), func() {}, nil
	}
	rs, err := session.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Сессии хранятся в Redis")
	return rs, func() {
		if err := rs.Close(); err != nil {
			log.Warnw("Ошибка закрытия соединения с Redis", "error", err)
		}
	}, nil
}

// FileServer для обслуживания статичных файлов
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer не поддерживает шаблоны URL")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}
