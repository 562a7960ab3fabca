package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultBatchSize = 100

// StaleSweeper отмена зависших pending-записей
type StaleSweeper interface {
	SweepStalePending(ctx context.Context, grace time.Duration, limit int) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры планировщика
type Config struct {
	Schedule  string // cron-выражение или дескриптор (@every 5m)
	Grace     time.Duration
	BatchSize int
	Timeout   time.Duration
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Sweeper по расписанию переводит просроченные pending-записи в cancelled ("no-show")
type Sweeper struct {
	sched  *cron.Cron
	svc    StaleSweeper
	cfg    Config
	logger Logger
}

func New(svc StaleSweeper, cfg Config, location *time.Location, logger Logger) (*Sweeper, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if location == nil {
		location = time.UTC
	}

	s := &Sweeper{
		sched:  cron.New(cron.WithLocation(location), cron.WithParser(cronParser)),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}

	if _, err := s.sched.AddFunc(cfg.Schedule, s.job); err != nil {
		return nil, fmt.Errorf("sweeper: invalid schedule %q: %w", cfg.Schedule, err)
	}

	return s, nil
}

// Run запускает планировщик и ждет отмены контекста
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("Sweeper started: schedule=%s, grace=%s", s.cfg.Schedule, s.cfg.Grace)
	s.sched.Start()

	<-ctx.Done()

	// Дожидаемся завершения текущего запуска
	<-s.sched.Stop().Done()
	s.logger.Info("Sweeper stopped")
	return nil
}

// RunOnce выполняет один проход
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	return s.svc.SweepStalePending(ctx, s.cfg.Grace, s.cfg.BatchSize)
}

func (s *Sweeper) job() {
	n, err := s.RunOnce(context.Background())
	if err != nil {
		s.logger.Error("Sweeper: sweep failed after %d cancellations: %v", n, err)
		return
	}
	if n > 0 {
		s.logger.Info("Sweeper: cancelled %d stale pending appointments", n)
	}
}
