package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

type StatsInput struct {
	Email string `validate:"required,email"`
}

type StatsOutput struct {
	Total          int64
	ByClass        map[string]int64
	ByModelVersion map[string]int64
}

// Stats aggregates the caller's records: total count, counts per known
// label, counts per model version.
func (s *Usecase) Stats(ctx context.Context, in StatsInput) (*StatsOutput, error) {
	ctx, span := s.startSpan(ctx, "Stats")
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

	rows, err := s.repoDB.StatsRows(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo load stats rows", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// known labels always present, even at zero
	byClass := map[string]int64{
		entity.LabelPositive: 0,
		entity.LabelNegative: 0,
	}
	for label, n := range lo.CountValuesBy(rows, func(r entity.StatsRow) string { return r.Label }) {
		if _, known := byClass[label]; known {
			byClass[label] = int64(n)
		}
	}

	byModel := lo.MapEntries(
		lo.CountValuesBy(rows, func(r entity.StatsRow) string { return r.ModelVersion }),
		func(k string, v int) (string, int64) { return k, int64(v) },
	)

	return &StatsOutput{
		Total:          int64(len(rows)),
		ByClass:        byClass,
		ByModelVersion: byModel,
	}, nil
}
