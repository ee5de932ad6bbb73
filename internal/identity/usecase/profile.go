package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
)

type ProfileInput struct {
	Email string `validate:"required,email"`
}

type ProfileOutput struct {
	UserID    string
	Email     string
	FullName  string
	CreatedAt time.Time
}

// Profile returns the account that the verified token claims identify.
func (s *Usecase) Profile(ctx context.Context, in ProfileInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}, nil
}
