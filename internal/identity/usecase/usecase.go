// Package usecase implements the identity business flows: registration,
// login and profile lookup.
package usecase

import (
	"context"

	"github.com/sentiqlab/sentiq/internal/identity/entity"
	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/goroutine"
	"github.com/sentiqlab/sentiq/internal/pkg/hash"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/token"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// UserRegisteredEvent is handed to the messaging repository after a
// successful registration.
type UserRegisteredEvent struct {
	UserID   string
	Email    string
	FullName string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.NewUser) error
}

// Usecase bundles the identity flows behind one receiver.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	hasher        hash.Hash
	uuid          uid.StringID
	clock         clock.Clocker
	token         *token.Codec
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

// Dependency lists what Usecase needs; New wires it.
type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Hasher        hash.Hash
	UUID          uid.StringID
	Clock         clock.Clocker
	Token         *token.Codec
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

// New constructs the identity usecase.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hasher:        dep.Hasher,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		token:         dep.Token,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}
