package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListInput struct {
	Email        string `validate:"required,email"`
	Label        string `validate:"omitempty,oneof=POSITIVE NEGATIVE"`
	ModelVersion string `validate:"omitempty,oneof=v1 v2"`
	Page         int32  `validate:"omitempty,min=1"`
	Limit        int32  `validate:"omitempty,min=1,max=100"`
}

type ListOutput struct {
	Predictions []entity.Prediction
	Total       int64
	Page        int32
	Limit       int32
}

// List returns the caller's records, newest first.
func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultPageSize
	}
	if in.Limit > maxPageSize {
		in.Limit = maxPageSize
	}

	userID, err := s.repoDB.GetUserIDByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user id", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	predictions, total, err := s.repoDB.ListPredictions(ctx, entity.ListFilter{
		UserID:       userID,
		Label:        in.Label,
		ModelVersion: in.ModelVersion,
		Limit:        in.Limit,
		Offset:       (in.Page - 1) * in.Limit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list predictions", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Predictions: predictions,
		Total:       total,
		Page:        in.Page,
		Limit:       in.Limit,
	}, nil
}
