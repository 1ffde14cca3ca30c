package database

import (
	"context"
	"fmt"

	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/repository"
	mongostore "github.com/Behyna/collect-gateway/internal/repository/mongodb"
	"github.com/Behyna/collect-gateway/pkg/mongodb"
	"github.com/Behyna/collect-gateway/pkg/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HealthChecker reports whether the configured store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Repositories is everything the services need from the store, provided to
// fx as separate values.
type Repositories struct {
	fx.Out

	Transactions repository.TransactionRepository
	Callbacks    repository.CallbackRepository
	Updates      repository.TransactionUpdateRepository
	Health       HealthChecker
}

// NewRepositories connects to the backend selected by storage.driver and
// ties its shutdown to the fx lifecycle.
func NewRepositories(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (Repositories, error) {
	ctx := context.Background()

	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		return newMySQLRepositories(ctx, lc, cfg, logger, m)
	case config.DriverMongoDB:
		return newMongoRepositories(ctx, lc, cfg, logger)
	default:
		return Repositories{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newMySQLRepositories(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger,
	m *metrics.Metrics) (Repositories, error) {
	db, err := mysql.NewConnection(ctx, cfg.Storage.MySQL, logger)
	if err != nil {
		m.RecordDBConnectionError()
		return Repositories{}, err
	}

	if err := repository.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate schema", zap.Error(err))
		return Repositories{}, fmt.Errorf("failed to migrate schema: %w", err)
	}

	collector := metrics.NewDatabaseMetricsCollector(m, logger, db)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(cfg.Metrics.CollectInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return Repositories{
		Transactions: repository.NewTransactionRepository(db),
		Callbacks:    repository.NewCallbackRepository(db),
		Updates:      repository.NewTransactionUpdateRepository(db),
		Health:       collector,
	}, nil
}

func newMongoRepositories(ctx context.Context, lc fx.Lifecycle, cfg *config.Config,
	logger *zap.Logger) (Repositories, error) {
	client, err := mongodb.NewConnection(ctx, cfg.Storage.MongoDB, logger)
	if err != nil {
		return Repositories{}, err
	}

	db := client.Database(cfg.Storage.MongoDB.Database)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		logger.Error("Failed to ensure indexes", zap.Error(err))
		_ = client.Disconnect(ctx)
		return Repositories{}, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return Repositories{
		Transactions: mongostore.NewTransactionRepository(db),
		Callbacks:    mongostore.NewCallbackRepository(db),
		Updates:      mongostore.NewTransactionUpdateRepository(db),
		Health:       mongoHealth{client: client},
	}, nil
}

type mongoHealth struct {
	client *mongo.Client
}

func (h mongoHealth) HealthCheck(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}
