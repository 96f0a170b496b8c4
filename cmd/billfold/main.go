package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/client"
	"github.com/billfold/billfold/internal/clock"
	"github.com/billfold/billfold/internal/company"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/events"
	"github.com/billfold/billfold/internal/invoice"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/migration"
	"github.com/billfold/billfold/internal/observability/metrics"
	"github.com/billfold/billfold/internal/observability/tracing"
	"github.com/billfold/billfold/internal/scheduler"
	"github.com/billfold/billfold/internal/seed"
	"github.com/billfold/billfold/internal/sequence"
	"github.com/billfold/billfold/internal/server"
	"github.com/billfold/billfold/internal/suggestion"
	"github.com/billfold/billfold/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if !cfg.IsProduction() {
				return seed.EnsureDemoData(conn)
			}
			return nil
		}),
		fx.Provide(
			events.NewOutbox,
			metrics.NewMeterProvider,
			metrics.NewHTTPMetrics,
			func(cfg config.Config) metrics.Config {
				return metrics.Config{
					ServiceName: "billfold",
					Environment: cfg.Environment,
				}
			},
			func(cfg config.Config) tracing.Config {
				return tracing.Config{
					Enabled:          cfg.Tracing.Enabled,
					ServiceName:      "billfold",
					ServiceVersion:   version,
					Environment:      cfg.Environment,
					ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
					ExporterProtocol: cfg.Tracing.ExporterProtocol,
					SamplingRatio:    cfg.Tracing.SamplingRatio,
				}
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg tracing.Config, log *zap.Logger) error {
			_, err := tracing.NewProvider(lc, cfg, log)
			return err
		}),
		clock.Module,
		sequence.Module,
		client.Module,
		company.Module,
		suggestion.Module,
		invoice.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}
