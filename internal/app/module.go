package app

import (
	"log/slog"
	"os"

	"github.com/sentiqlab/sentiq/internal/identity"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/prediction"
)

type healthResponse struct {
	Status string `json:"status"`
}

type welcomeResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

func (a *App) registerSystemEndpoints() {
	a.router.GET("/", func(*router.Request) (any, error) {
		return welcomeResponse{
			Service: a.config.GetString("instrument.service_name"),
			Version: a.config.GetString("instrument.service_version"),
		}, nil
	})

	a.router.GET("/health", func(r *router.Request) (any, error) {
		if err := a.dbConn.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed on DB ping", "error", err)
			return nil, err
		}

		return healthResponse{Status: "healthy"}, nil
	})
}

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			Goroutine:  a.goroutine,
			UUID:       a.uuid,
			OID:        a.oid,
			Hasher:     a.hasher,
			Clock:      a.clock,
			Validator:  a.validator,
			Token:      a.token,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.prediction.enabled") {
		if err := prediction.New(prediction.Dependency{
			DBConn:      a.dbConn,
			Router:      a.router,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			Idempotency: a.idemp,
			SID:         a.uid,
			OID:         a.oid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module prediction", "error", err)
			os.Exit(1)
		}
	}
}
