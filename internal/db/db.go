// Файл: internal/db/db.go
package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

var ErrOrderNotFound = errors.New("заказ не найден")

// Store - доступ к таблицам orders и bot_config.
type Store struct {
	db      *sqlx.DB
	dialect string
	log     *zap.SugaredLogger
}

// NewStore оборачивает готовое подключение. Диалект берётся из имени драйвера.
func NewStore(conn *sqlx.DB, log *zap.SugaredLogger) *Store {
	dialect := DialectPostgres
	if conn.DriverName() == DialectMySQL {
		dialect = DialectMySQL
	}
	return &Store{db: conn, dialect: dialect, log: log}
}

// Open подключается к базе и ждёт её готовности, повторяя ping с экспоненциальной паузой.
func Open(ctx context.Context, driver, dsn string, loc *time.Location, log *zap.SugaredLogger) (*Store, error) {
	finalDSN, err := normalizeDSN(driver, dsn, loc)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driver, finalDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	conn.SetMaxOpenConns(50)
	conn.SetMaxIdleConns(20)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := pingWithRetry(ctx, conn, log); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ошибка проверки соединения с базой данных: %w", err)
	}

	log.Infow("Успешное подключение к базе данных.", "driver", driver)
	return NewStore(conn, log), nil
}

func normalizeDSN(driver, dsn string, loc *time.Location) (string, error) {
	switch driver {
	case DialectMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("ошибка парсинга DSN MySQL: %w", err)
		}
		cfg.ParseTime = true
		if loc != nil {
			cfg.Loc = loc
		}
		return cfg.FormatDSN(), nil
	case DialectPostgres:
		if _, err := url.Parse(dsn); err != nil {
			return "", fmt.Errorf("ошибка парсинга DATABASE_URL: %w", err)
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("неподдерживаемый драйвер базы данных: %s", driver)
	}
}

func pingWithRetry(ctx context.Context, conn *sqlx.DB, log *zap.SugaredLogger) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 500 * time.Millisecond
	exp.Multiplier = 2.0
	exp.MaxInterval = 5 * time.Second
	exp.Reset()

	op := func() (struct{}, error) {
		return struct{}{}, conn.PingContext(ctx)
	}
	notify := func(err error, next time.Duration) {
		log.Warnw("База данных недоступна, повтор", "error", err, "retry_in", next)
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(30*time.Second),
		backoff.WithNotify(notify),
	)
	return err
}

// Ping проверяет соединение, используется в /health.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Dialect возвращает postgres или mysql.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close закрывает соединение с базой данных.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.log.Info("Соединение с базой данных закрыто.")
	return err
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
