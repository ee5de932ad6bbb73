package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

type DetailInput struct {
	Email string `validate:"required,email"`
	ID    int64  `validate:"required,min=1"`
}

// Detail returns one record scoped to the caller.
func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*entity.Prediction, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	userID, err := s.repoDB.GetUserIDByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user id", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	pred, err := s.repoDB.GetPrediction(ctx, in.ID, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Prediction not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get prediction", "prediction_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return pred, nil
}
