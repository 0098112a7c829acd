// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/ihsb/ihsbsite/internal/app/store/docstore"
	"github.com/ihsb/ihsbsite/internal/app/system/indexes"
	"github.com/ihsb/ihsbsite/internal/app/system/timeouts"
	"github.com/ihsb/ihsbsite/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the configured document store.
//
// It is the first hook that talks to a backend, so the configured timeouts
// are applied here. For mongo, the client's operation timeout is
// appCfg.TimeoutStore; handlers rely on it rather than setting their own
// deadlines.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	configureTimeouts(appCfg)

	if appCfg.StoreBackend == BackendMemory {
		logger.Info("using in-memory document store")
		return DBDeps{Store: docstore.NewMemory(), Backend: BackendMemory, cleanup: newCleanup()}, nil
	}

	opts := mongoClientOptions(appCfg)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize),
		zap.Uint64("min_pool", appCfg.MongoMinPoolSize))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Store:         docstore.NewMongo(db),
		Backend:       BackendMongo,
		cleanup:       newCleanup(),
	}, nil
}

// configureTimeouts hands the configured durations to the timeouts package.
// Zero values keep the defaults.
func configureTimeouts(appCfg AppConfig) {
	timeouts.Configure(timeouts.Config{
		Store:    appCfg.TimeoutStore,
		Upstream: appCfg.TimeoutUpstream,
	})
}

func mongoClientOptions(appCfg AppConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(appCfg.MongoURI).
		SetAppName("ihsbsite").
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize).
		SetTimeout(timeouts.Store())
}

// EnsureSchema creates the collections with their validators, then the
// indexes. The memory store needs neither.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	logger.Info("indexes ensured")
	return nil
}
