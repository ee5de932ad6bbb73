package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

const queryGetUserIDByEmail = `
SELECT id
FROM users
WHERE email = $1
`

// GetUserIDByEmail resolves an account email to its ID, or goerror.ErrNotFound.
func (s *DB) GetUserIDByEmail(ctx context.Context, email string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetUserIDByEmail")
	defer func() { s.endSpan(span, err) }()

	var id string
	err = s.conn.QueryRow(ctx, queryGetUserIDByEmail, email).Scan(&id)
	if err != nil {
		return "", s.mapError(err)
	}

	return id, nil
}

const queryCreatePrediction = `
INSERT INTO predictions (id, user_id, model_version, input, output, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

// CreatePrediction inserts a scored record.
func (s *DB) CreatePrediction(ctx context.Context, pred entity.Prediction) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePrediction")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreatePrediction,
		pred.ID,
		pred.UserID,
		pred.ModelVersion,
		pred.Input,
		pred.Output,
		pred.CreatedAt,
	)
	return s.mapError(err)
}

// ListPredictions returns one page of a user's records, newest first, plus
// the total matching count.
func (s *DB) ListPredictions(ctx context.Context, filter entity.ListFilter) (_ []entity.Prediction, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListPredictions")
	defer func() { s.endSpan(span, err) }()

	where := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.ModelVersion != "" {
		args = append(args, filter.ModelVersion)
		where = append(where, fmt.Sprintf("model_version = $%d", len(args)))
	}
	if filter.Label != "" {
		args = append(args, filter.Label)
		where = append(where, fmt.Sprintf("output->>'label' = $%d", len(args)))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	err = s.conn.QueryRow(ctx, "SELECT count(*) FROM predictions WHERE "+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	query := fmt.Sprintf(`
SELECT id, user_id, model_version, input, output, created_at
FROM predictions
WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d
`, cond, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	predictions := make([]entity.Prediction, 0, filter.Limit)
	for rows.Next() {
		var p entity.Prediction
		if err = rows.Scan(&p.ID, &p.UserID, &p.ModelVersion, &p.Input, &p.Output, &p.CreatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return predictions, total, nil
}

const queryGetPrediction = `
SELECT id, user_id, model_version, input, output, created_at
FROM predictions
WHERE id = $1 AND user_id = $2
`

// GetPrediction returns one record scoped to its owner, or goerror.ErrNotFound.
func (s *DB) GetPrediction(ctx context.Context, id int64, userID string) (_ *entity.Prediction, err error) {
	ctx, span := s.startSpan(ctx, "GetPrediction")
	defer func() { s.endSpan(span, err) }()

	var p entity.Prediction
	err = s.conn.QueryRow(ctx, queryGetPrediction, id, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.ModelVersion,
		&p.Input,
		&p.Output,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

const queryStatsRows = `
SELECT model_version, output->>'label'
FROM predictions
WHERE user_id = $1
`

// StatsRows returns the (model_version, label) pair of every record the user
// owns; the usecase aggregates them.
func (s *DB) StatsRows(ctx context.Context, userID string) (_ []entity.StatsRow, err error) {
	ctx, span := s.startSpan(ctx, "StatsRows")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, queryStatsRows, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var out []entity.StatsRow
	for rows.Next() {
		var r entity.StatsRow
		if err = rows.Scan(&r.ModelVersion, &r.Label); err != nil {
			return nil, s.mapError(err)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}
