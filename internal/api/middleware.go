package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"motorist/internal/constants"
	"motorist/internal/metrics"
	"motorist/internal/session"
)

// unmatchedRoute - метка маршрута для запросов, не попавших ни в один шаблон.
const unmatchedRoute = "unmatched"

// SessionContextKey - ключ для сохранения сессии администратора в контексте запроса.
var SessionContextKey = &contextKey{"Session"}

type contextKey struct {
	name string
}

// AuthMiddleware пропускает запрос только с действующей сессией в cookie.
func AuthMiddleware(sessions *session.Manager, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(constants.SESSION_COOKIE_NAME)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			s, err := sessions.Validate(r.Context(), cookie.Value)
			if err != nil {
				log.Debugw("AuthMiddleware: сессия отклонена", "error", err, "ip", clientIP(r))
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFromContext возвращает сессию, сохранённую AuthMiddleware.
func sessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(session.Session)
	return s, ok
}

// RequestLogger пишет access-лог и метрику длительности запроса.
func RequestLogger(log *zap.SugaredLogger, m *metrics.Collectors) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			// Сырой путь в метку не идёт: сканеры наплодили бы серий.
			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			m.ObserveRequest(r.Method, route, strconv.Itoa(status), duration)

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()),
			}
			switch {
			case status >= 500:
				log.Errorw("HTTP запрос", fields...)
			case status >= 400:
				log.Warnw("HTTP запрос", fields...)
			default:
				log.Infow("HTTP запрос", fields...)
			}
		})
	}
}

// clientIP возвращает адрес клиента; за прокси его подставляет middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
