// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/meditrip/internal/app/store/submissions"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the Mongo client used by the contact journal. With no
// mongo_uri the site runs without a journal and DBDeps stays empty.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if !appCfg.journalEnabled() {
		logger.Info("mongo_uri not set; contact journal disabled")
		return DBDeps{}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(appCfg.MongoURI).
		SetAppName("meditrip").
		SetServerSelectionTimeout(timeouts.Ping()))
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the journal collection with its validator and indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Store())
	defer cancel()

	if err := validators.EnsureAll(ctx, deps.MongoDatabase, logger); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return fmt.Errorf("ensure validators: %w", err)
	}
	if err := submissions.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		logger.Error("ensure indexes failed", zap.String("collection", submissions.CollectionName), zap.Error(err))
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
