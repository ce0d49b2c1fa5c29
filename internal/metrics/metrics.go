package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "motorist"

// Collectors - метрики админки. Нулевой *Collectors допустим: методы ничего не делают.
type Collectors struct {
	Notifications    *prometheus.CounterVec
	PhoneExtractions *prometheus.CounterVec
	LoginAttempts    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewCollectors создаёт метрики и регистрирует их вместе со стандартными
// метриками процесса и Go runtime.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_notifications_total",
			Help:      "Уведомления клиентам о смене статуса заказа.",
		}, []string{"result"}),
		PhoneExtractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phone_extractions_total",
			Help:      "Распознавание телефона в заказах, показанных в списке и карточке, по сработавшему правилу.",
		}, []string{"strategy"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Попытки входа в админку.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность обработки HTTP-запросов.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	var err error
	for _, col := range []prometheus.Collector{
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	} {
		if _, err = register(reg, col); err != nil {
			return nil, err
		}
	}
	if c.Notifications, err = register(reg, c.Notifications); err != nil {
		return nil, err
	}
	if c.PhoneExtractions, err = register(reg, c.PhoneExtractions); err != nil {
		return nil, err
	}
	if c.LoginAttempts, err = register(reg, c.LoginAttempts); err != nil {
		return nil, err
	}
	if c.RequestDuration, err = register(reg, c.RequestDuration); err != nil {
		return nil, err
	}
	return c, nil
}

// register регистрирует коллектор; если такой уже есть, возвращает существующий.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return c, nil
		}
		return c, err
	}
	return c, nil
}

func (c *Collectors) NotificationResult(result string) {
	if c == nil {
		return
	}
	c.Notifications.WithLabelValues(result).Inc()
}

func (c *Collectors) PhoneExtracted(strategy string) {
	if c == nil {
		return
	}
	c.PhoneExtractions.WithLabelValues(strategy).Inc()
}

func (c *Collectors) LoginAttempt(outcome string) {
	if c == nil {
		return
	}
	c.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (c *Collectors) ObserveRequest(method, route, status string, d time.Duration) {
	if c == nil {
		return
	}
	c.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
