// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/registro/internal/app/store/formsessions"
	"github.com/dalemusser/registro/internal/app/system/aimodel"
	"github.com/dalemusser/registro/internal/app/system/ratelimit"
	"github.com/dalemusser/registro/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// The Mongo fields are nil when the submission ledger is disabled. Services
// is allocated by ConnectDB and filled in by Startup, so every later hook
// sees the same instances.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Services *Services
}

// Services are the long-lived in-process components built at startup.
type Services struct {
	Model    aimodel.Model // nil when no API key is configured
	Limiter  *ratelimit.Limiter
	Sessions *formsessions.Registry
	Cleanup  *workers.SessionCleanup
}
