package engine

import (
	"context"
	"time"

	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
	"github.com/sentiqlab/sentiq/internal/prediction/usecase"
	"go.opentelemetry.io/otel/attribute"
)

// Mock is a deterministic scorer keyed on text length. v1 flags even
// lengths as negative, v2 lengths divisible by three; the score is the
// length times a per-version multiplier, modulo 100, scaled into [0, 1).
type Mock struct {
	ins instrument.Instrumentation
}

// NewMock constructs the mock engine.
func NewMock(ins instrument.Instrumentation) *Mock {
	return &Mock{ins: ins}
}

// Predict scores a text without any I/O.
func (m *Mock) Predict(ctx context.Context, text, version string) (*usecase.EngineResult, error) {
	ctx, span := m.ins.Tracer("prediction.outbound.engine").Start(ctx, "Mock.Predict")
	defer span.End()

	start := time.Now()
	version = normalizeVersion(version)

	divisor := 3
	multiplier := 7
	if version == entity.ModelVersionV1 {
		divisor = 2
		multiplier = 1
	}

	label := entity.LabelPositive
	if len(text)%divisor == 0 {
		label = entity.LabelNegative
	}
	score := float64(len(text)*multiplier%100) / 100.0

	span.SetAttributes(
		attribute.String("model_version", version),
		attribute.String("label", label),
	)

	return &usecase.EngineResult{
		Label:        label,
		Score:        score,
		ModelVersion: version,
		ElapsedMS:    float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}
