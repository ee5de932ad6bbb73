// Package identity wires the account module: registration, login and
// profile lookup.
package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sentiqlab/sentiq/internal/identity/inbound"
	"github.com/sentiqlab/sentiq/internal/identity/outbound/db"
	"github.com/sentiqlab/sentiq/internal/identity/outbound/mq"
	"github.com/sentiqlab/sentiq/internal/identity/usecase"
	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/goroutine"
	"github.com/sentiqlab/sentiq/internal/pkg/hash"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/messaging"
	"github.com/sentiqlab/sentiq/internal/pkg/router"
	"github.com/sentiqlab/sentiq/internal/pkg/token"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
)

// Dependency lists everything the identity module needs from the app.
type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	Hasher     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Token      *token.Codec               `validate:"required"`
}

// New validates the dependencies and registers the module's endpoints.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.OID, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Hasher:        dep.Hasher,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Token:         dep.Token,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
