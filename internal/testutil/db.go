package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoURI is used when MEDITRIP_TEST_MONGO_URI is unset.
const DefaultMongoURI = "mongodb://localhost:27017"

// TestContext returns a context suitable for a single test's database work.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// MongoURI returns the test server URI.
func MongoURI() string {
	if uri := os.Getenv("MEDITRIP_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return DefaultMongoURI
}

// SetupTestDB connects to the test Mongo server and returns a fresh,
// uniquely named database that is dropped when the test finishes. The test
// is skipped when no server is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := MongoURI()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("mongo not available: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo not available: %v", err)
	}

	db := client.Database(fmt.Sprintf("meditrip_test_%s", primitive.NewObjectID().Hex()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
