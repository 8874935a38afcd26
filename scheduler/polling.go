package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/vehicleDash/internal/middleware/logging"
)

// Cycle - одна итерация опроса. Ошибка только логируется и не прерывает расписание;
// отмена контекста при остановке сбоем не считается.
type Cycle func(ctx context.Context) error

// TickerFunc создает источник тиков с заданным периодом и функцию его остановки.
type TickerFunc func(period time.Duration) (<-chan time.Time, func())

func realTicker(period time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(period)
	return t.C, t.Stop
}

// Scheduler запускает Cycle сразу при старте и затем на каждой границе периода
// (фиксированная частота, от начала до начала). Каждая итерация выполняется в своей
// горутине: долгая итерация не задерживает следующий тик, итерации могут перекрываться.
type Scheduler struct {
	period    time.Duration
	cycle     Cycle
	logger    *logging.Logger
	newTicker TickerFunc
	wg        sync.WaitGroup
}

type Option func(*Scheduler)

// WithTicker подменяет источник тиков.
func WithTicker(f TickerFunc) Option {
	return func(s *Scheduler) { s.newTicker = f }
}

// New проверяет параметры и создает планировщик.
func New(period time.Duration, cycle Cycle, logger *logging.Logger, opts ...Option) (*Scheduler, error) {
	if period <= 0 {
		return nil, fmt.Errorf("poll period must be positive, got %s", period)
	}
	if cycle == nil {
		return nil, fmt.Errorf("cycle is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Scheduler{
		period:    period,
		cycle:     cycle,
		logger:    logger.WithPrefix("POLLER"),
		newTicker: realTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Period возвращает период опроса.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Run выполняет расписание до отмены контекста, затем дожидается
// завершения итераций, которые еще выполняются.
func (s *Scheduler) Run(ctx context.Context) {
	ticks, stop := s.newTicker(s.period)
	defer stop()

	s.logger.Info("Starting polling", "interval", s.period)
	defer s.logger.Info("Polling stopped")

	s.fire(ctx)
	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return
		case <-ticks:
			s.fire(ctx)
		}
	}
}

// Start запускает расписание в фоне. Возвращенный канал закрывается после остановки.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	return done
}

func (s *Scheduler) fire(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Refresh cycle panicked", "panic", r)
			}
		}()

		err := s.cycle(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil && errors.Is(err, context.Canceled):
			s.logger.Debug("Refresh cycle interrupted by shutdown", "error", err)
		default:
			s.logger.Error("Refresh cycle failed", "error", err)
		}
	}()
}
