// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panelboard/panelboard/internal/app/store/cache"
)

// DBDeps holds database and cache dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Cache is nil when redis_url is blank; callers degrade to uncached
	// reads.
	Cache *cache.Client
}
