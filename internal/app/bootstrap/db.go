// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/activity"
	"github.com/panelboard/panelboard/internal/app/store/cache"
	"github.com/panelboard/panelboard/internal/app/store/sessions"
	taskstore "github.com/panelboard/panelboard/internal/app/store/tasks"
	userstore "github.com/panelboard/panelboard/internal/app/store/users"
)

// ConnectDB establishes the MongoDB connection and, when configured, the
// Redis cache. A Redis failure is logged and tolerated; a Mongo failure
// aborts startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}

	if appCfg.RedisURL != "" {
		c, err := cache.New(ctx, appCfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			logger.Info("connected to Redis")
			deps.Cache = c
		}
	}

	return deps, nil
}

// EnsureSchema creates the indexes the stores rely on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := sessions.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("sessions indexes: %w", err)
	}
	if err := activity.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("activity indexes: %w", err)
	}
	if err := taskstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}

	logger.Info("database indexes ensured")
	return nil
}
