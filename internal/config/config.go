// internal/config/config.go
package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	defaultTelegramAPIEndpoint  = "https://api.telegram.org/bot%s/%s"
	defaultTelegramFileEndpoint = "https://api.telegram.org/file/bot%s/%s"
	defaultPort                 = "8080"
	defaultSessionTTLHours      = 12
	defaultTimezone             = "Europe/Moscow"
)

// Config хранит все конфигурационные параметры приложения.
// Собирается один раз при старте и передаётся в сервисы явно.
type Config struct {
	TelegramToken        string
	TelegramAPIEndpoint  string
	TelegramFileEndpoint string

	DatabaseURL string
	DBDriver    string
	DBHost      string
	DBName      string

	AdminPassword string
	AppEnv        string
	Port          string
	SessionTTL    time.Duration
	RedisURL      string

	CORSAllowedOrigins []string
	Location           *time.Location
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig(log *zap.SugaredLogger) (*Config, error) {
	cfg := &Config{
		TelegramToken:        os.Getenv("TELEGRAM_APITOKEN"),
		TelegramAPIEndpoint:  envOrDefault("TELEGRAM_API_ENDPOINT", defaultTelegramAPIEndpoint),
		TelegramFileEndpoint: envOrDefault("TELEGRAM_FILE_ENDPOINT", defaultTelegramFileEndpoint),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBDriver:             strings.ToLower(envOrDefault("DB_DRIVER", DriverPostgres)),
		AdminPassword:        os.Getenv("ADMIN_PANEL_PASSWORD"),
		AppEnv:               os.Getenv("ENV"),
		Port:                 envOrDefault("PORT", defaultPort),
		RedisURL:             os.Getenv("REDIS_URL"),
		CORSAllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverMySQL {
		log.Warnw("Неизвестный DB_DRIVER, используется postgres", "driver", cfg.DBDriver)
		cfg.DBDriver = DriverPostgres
	}

	ttlStr := os.Getenv("SESSION_TTL_HOURS")
	cfg.SessionTTL = defaultSessionTTLHours * time.Hour
	if ttlStr != "" {
		hours, err := strconv.Atoi(ttlStr)
		if err != nil || hours <= 0 {
			log.Warnw("Некорректное значение SESSION_TTL_HOURS, используется значение по умолчанию",
				"value", ttlStr, "default_hours", defaultSessionTTLHours)
		} else {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}

	tz := envOrDefault("TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warnw("Не удалось загрузить часовой пояс, используется UTC", "timezone", tz, "error", err)
		loc = time.UTC
	}
	cfg.Location = loc

	if cfg.TelegramToken == "" {
		log.Warn("TELEGRAM_APITOKEN не установлен. Уведомления клиентам и фото заказов будут недоступны.")
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	} else {
		cfg.DBHost, cfg.DBName = describeDSN(cfg.DBDriver, cfg.DatabaseURL)
	}
	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PANEL_PASSWORD")
	}
	if len(missing) > 0 {
		log.Errorw("Критическая ошибка: не заданы обязательные переменные", "missing", missing)
		return nil, errors.New("не заданы обязательные переменные окружения: " + strings.Join(missing, ", "))
	}

	log.Infow("Конфигурация загружена.", "env", cfg.AppEnv, "db_driver", cfg.DBDriver,
		"db_host", cfg.DBHost, "db_name", cfg.DBName, "redis_sessions", cfg.RedisURL != "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// describeDSN достаёт хост и имя базы для логов, не раскрывая пароль.
func describeDSN(driver, dsn string) (host, name string) {
	if driver == DriverPostgres {
		parsedURL, err := url.Parse(dsn)
		if err != nil || parsedURL.Host == "" {
			return "", ""
		}
		return parsedURL.Hostname(), strings.TrimPrefix(parsedURL.Path, "/")
	}
	// user:pass@tcp(host:3306)/dbname?params
	at := strings.LastIndex(dsn, "@")
	rest := dsn[at+1:]
	if open, closing := strings.Index(rest, "("), strings.Index(rest, ")"); open >= 0 && closing > open {
		host = rest[open+1 : closing]
		rest = rest[closing+1:]
	}
	if slash := strings.Index(rest, "/"); slash >= 0 {
		name = rest[slash+1:]
		if q := strings.Index(name, "?"); q >= 0 {
			name = name[:q]
		}
	}
	return host, name
}
