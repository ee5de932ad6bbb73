package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/pkg/idempotency"
	"github.com/sentiqlab/sentiq/internal/pkg/valueobject"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

type CreateInput struct {
	Email          string `validate:"required,email"`
	Text           string `validate:"required,max=5000"`
	ModelVersion   string `validate:"omitempty,oneof=v1 v2"`
	IdempotencyKey string `validate:"omitempty,max=128"`
}

type CreateOutput struct {
	ID           int64
	ModelVersion string
	Label        string
	Score        float64
}

// Create scores a text, stores the record and publishes an event. When an
// idempotency key is supplied, retries with the same key are rejected
// instead of scored twice.
func (s *Usecase) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.IdempotencyKey == "" {
		return s.create(ctx, in)
	}

	var out *CreateOutput
	err := s.idemp.Exec(ctx, "prediction:"+in.IdempotencyKey, func(ctx context.Context) error {
		var err error
		out, err = s.create(ctx, in)
		return err
	}, idempotency.WithStateTTL(s.cfg.GetMinute("modules.prediction.idempotency_ttl_minutes")))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("Request already processed", goerror.CodeConflict)
	case err != nil:
		return nil, err
	}

	return out, nil
}

func (s *Usecase) create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	userID, err := s.repoDB.GetUserIDByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user id", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	result, err := s.engine.Predict(ctx, in.Text, in.ModelVersion)
	if err != nil {
		slog.ErrorContext(ctx, "engine predict failed", "model_version", in.ModelVersion, "error", err)
		return nil, goerror.NewServer(err)
	}

	pred := entity.Prediction{
		ID:           s.uid.Generate(),
		UserID:       userID,
		ModelVersion: result.ModelVersion,
		Input:        valueobject.JSONMap{"text": in.Text},
		Output: valueobject.JSONMap{
			"label":      result.Label,
			"score":      result.Score,
			"elapsed_ms": result.ElapsedMS,
		},
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreatePrediction(ctx, pred); err != nil {
		slog.ErrorContext(ctx, "failed to repo create prediction", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishPredictionCreated(ctx, PredictionCreatedEvent{
		PredictionID: pred.ID,
		UserID:       userID,
		Label:        result.Label,
		Score:        result.Score,
		ModelVersion: result.ModelVersion,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish prediction created", "prediction_id", pred.ID, "error", err)
	}

	return &CreateOutput{
		ID:           pred.ID,
		ModelVersion: result.ModelVersion,
		Label:        result.Label,
		Score:        result.Score,
	}, nil
}
