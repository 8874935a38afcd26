package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iwtcode/vehicleDash/internal/middleware/logging"
	"github.com/iwtcode/vehicleDash/models"
	dasherrors "github.com/iwtcode/vehicleDash/pkg/errors"
)

const (
	ResultOK        = "ok"
	ResultStatus    = "status_error"
	ResultTransport = "transport_error"
)

// Metrics - счетчики опроса на собственном реестре, чтобы несколько клиентов
// в одном процессе (например, в тестах) не конфликтовали.
type Metrics struct {
	registry      *prometheus.Registry
	Cycles        *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	LastSuccess   prometheus.Gauge
	SlotWrites    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vehicle_dash_refresh_cycles_total",
			Help: "Total number of refresh cycles by result",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vehicle_dash_fetch_duration_seconds",
			Help:    "Duration of status endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vehicle_dash_last_success_timestamp_seconds",
			Help: "Unix time of the last successfully rendered cycle",
		}),
		SlotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vehicle_dash_slot_writes_total",
			Help: "Total number of writes per display slot",
		}, []string{"slot"}),
	}
	m.registry.MustRegister(m.Cycles, m.FetchDuration, m.LastSuccess, m.SlotWrites)
	return m
}

// ObserveCycle учитывает результат одной итерации опроса.
func (m *Metrics) ObserveCycle(duration time.Duration, err error, now time.Time) {
	m.FetchDuration.Observe(duration.Seconds())
	switch {
	case err == nil:
		m.Cycles.WithLabelValues(ResultOK).Inc()
		m.LastSuccess.Set(float64(now.Unix()))
	case errors.Is(err, dasherrors.ErrUnexpectedStatus):
		m.Cycles.WithLabelValues(ResultStatus).Inc()
	default:
		m.Cycles.WithLabelValues(ResultTransport).Inc()
	}
}

// SlotChanged считает записи в слоты. Подключать через DisplaySlots.Subscribe,
// иначе исходное содержимое будет посчитано как записи.
func (m *Metrics) SlotChanged(id models.SlotID, _ string) {
	m.SlotWrites.WithLabelValues(string(id)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve отдает /metrics на addr до отмены контекста.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
