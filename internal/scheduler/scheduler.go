// Package scheduler drains the invoice event outbox in the background.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/config"
)

type Config struct {
	Interval  time.Duration
	BatchSize int
	Retention time.Duration
}

func defaultConfig() Config {
	return Config{
		Interval:  15 * time.Second,
		BatchSize: 100,
		Retention: 30 * 24 * time.Hour,
	}
}

type Scheduler struct {
	db  *gorm.DB
	log *zap.Logger
	cfg Config
}

func New(db *gorm.DB, log *zap.Logger) *Scheduler {
	return &Scheduler{
		db:  db,
		log: log.Named("scheduler"),
		cfg: defaultConfig(),
	}
}

// Run loops until ctx is cancelled, draining the outbox every interval and
// pruning delivered rows past retention.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dispatched, err := s.dispatchOnce(ctx)
			if err != nil {
				s.log.Error("outbox dispatch failed", zap.Error(err))
				continue
			}
			if dispatched > 0 {
				s.log.Info("outbox dispatched", zap.Int("count", dispatched))
			}
			if err := s.pruneOnce(ctx); err != nil {
				s.log.Error("outbox prune failed", zap.Error(err))
			}
		}
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Scheduler, cfg config.Config) {
		if cfg.Environment == "test" {
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go s.Run(ctx)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}),
)
