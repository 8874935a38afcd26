package dash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iwtcode/vehicleDash/internal/metrics"
	"github.com/iwtcode/vehicleDash/internal/middleware/logging"
	"github.com/iwtcode/vehicleDash/models"
	"github.com/iwtcode/vehicleDash/render"
	"github.com/iwtcode/vehicleDash/scheduler"
	"github.com/iwtcode/vehicleDash/status"
)

// Client является основной точкой входа: опрашивает эндпоинт и обновляет слоты.
type Client struct {
	config    *Config
	logger    *logging.Logger
	fetcher   *status.Fetcher
	slots     *models.DisplaySlots
	metrics   *metrics.Metrics
	schedOpts []scheduler.Option
	now       func() time.Time
}

type Option func(*Client)

// WithObserver подключает поверхность отображения к слотам.
func WithObserver(o models.SlotObserver) Option {
	return func(c *Client) { c.slots.Attach(o) }
}

// WithLogger подменяет логгер, собранный из конфигурации.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSchedulerOptions передает опции планировщику.
func WithSchedulerOptions(opts ...scheduler.Option) Option {
	return func(c *Client) { c.schedOpts = append(c.schedOpts, opts...) }
}

// New создает и возвращает новый экземпляр клиента.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.RefreshSeconds <= 0 {
		return nil, fmt.Errorf("refresh period must be positive, got %ds", cfg.RefreshSeconds)
	}

	fetcher, err := status.NewFetcher(cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status fetcher: %w", err)
	}

	c := &Client{
		config:  cfg,
		fetcher: fetcher,
		slots:   models.NewDisplaySlots(models.DefaultContent(cfg.Title)),
		metrics: metrics.New(),
		now:     time.Now,
	}
	c.slots.Subscribe(c.metrics)

	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogger(&logging.Config{
			Level:      cfg.LogLevel,
			Console:    cfg.UI != UITerminal,
			LogsDir:    cfg.LogsDir,
			SavingDays: cfg.LogSavingDays,
		}, "DASH")
	}

	return c, nil
}

// Close освобождает файл логов.
func (c *Client) Close() error {
	return c.logger.Close()
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger.Base()
}

// Logger возвращает логгер с префиксами.
func (c *Client) Logger() *logging.Logger {
	return c.logger
}

// Slots возвращает слоты отображения.
func (c *Client) Slots() *models.DisplaySlots {
	return c.slots
}

// Metrics возвращает счетчики опроса.
func (c *Client) Metrics() *metrics.Metrics {
	return c.metrics
}

// Refresh выполняет одну итерацию: запрос статуса и перенос его в слоты.
// При ошибке транспорта слоты не меняются.
func (c *Client) Refresh(ctx context.Context) error {
	started := c.now()
	payload, err := c.fetcher.Fetch(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		// запрос прерван остановкой процесса, это не сбой опроса
		return fmt.Errorf("refresh interrupted: %w", err)
	}
	c.metrics.ObserveCycle(c.now().Sub(started), err, c.now())
	if err != nil {
		return fmt.Errorf("failed to refresh dashboard: %w", err)
	}

	render.Render(payload, c.slots)
	c.logger.Debug("Dashboard refreshed", "endpoint", c.fetcher.Endpoint())
	return nil
}

// Run опрашивает эндпоинт с заданным периодом до отмены контекста.
func (c *Client) Run(ctx context.Context) error {
	sched, err := scheduler.New(c.config.Period(), c.Refresh, c.logger, c.schedOpts...)
	if err != nil {
		return err
	}

	if c.config.MetricsAddr != "" {
		go func() {
			if err := c.metrics.Serve(ctx, c.config.MetricsAddr, c.logger.WithPrefix("METRICS")); err != nil {
				c.logger.Error("Metrics server failed", "addr", c.config.MetricsAddr, "error", err)
			}
		}()
	}

	c.logger.Info("Dashboard client started", "endpoint", c.fetcher.Endpoint(), "period", sched.Period())
	sched.Run(ctx)
	return nil
}
