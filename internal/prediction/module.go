// Package prediction wires the scoring module: create, list, detail and
// per-user stats.
package prediction

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/idempotency"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/messaging"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
	"github.com/sentiqlab/sentiq/internal/prediction/inbound"
	"github.com/sentiqlab/sentiq/internal/prediction/outbound/db"
	"github.com/sentiqlab/sentiq/internal/prediction/outbound/engine"
	"github.com/sentiqlab/sentiq/internal/prediction/outbound/mq"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
)

// Dependency lists everything the prediction module needs from the app.
type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	SID         uid.NumberID               `validate:"required"`
	OID         uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

// New validates the dependencies and registers the module's endpoints.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	eng, err := engine.NewFromDriver(dep.Config, dep.Instrument)
	if err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.OID, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Engine:        eng,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.SID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
