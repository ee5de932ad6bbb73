// Package app wires the service: configuration, instrumentation, shared
// libraries, external resources, the HTTP server and the domain modules.
package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/goroutine"
	"github.com/sentiqlab/sentiq/internal/pkg/hash"
	"github.com/sentiqlab/sentiq/internal/pkg/idempotency"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/messaging"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/pkg/token"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hasher    hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	token     *token.Codec

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initToken()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
