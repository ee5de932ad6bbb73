// Package usecase implements the prediction flows: scoring, listing,
// detail lookup and summary stats.
package usecase

import (
	"context"

	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/idempotency"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
	"go.opentelemetry.io/otel/trace"
)

// EngineResult is the outcome of one scoring call.
type EngineResult struct {
	Label        string
	Score        float64
	ModelVersion string
	ElapsedMS    float64
}

// Engine scores a text with the requested model version.
type Engine interface {
	Predict(ctx context.Context, text, version string) (*EngineResult, error)
}

// PredictionCreatedEvent is handed to the messaging repository after a
// record is stored.
type PredictionCreatedEvent struct {
	PredictionID int64
	UserID       string
	Label        string
	Score        float64
	ModelVersion string
}

type repoMessaging interface {
	PublishPredictionCreated(ctx context.Context, msg PredictionCreatedEvent) error
}

type repoDB interface {
	GetUserIDByEmail(ctx context.Context, email string) (string, error)
	CreatePrediction(ctx context.Context, p entity.Prediction) error
	ListPredictions(ctx context.Context, filter entity.ListFilter) ([]entity.Prediction, int64, error)
	GetPrediction(ctx context.Context, id int64, userID string) (*entity.Prediction, error)
	StatsRows(ctx context.Context, userID string) ([]entity.StatsRow, error)
}

// Usecase bundles the prediction flows behind one receiver.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	engine        Engine
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

// Dependency lists what Usecase needs; New wires it.
type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Engine        Engine
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

// New constructs the prediction usecase.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		engine:        dep.Engine,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("prediction.usecase").Start(ctx, name)
}
