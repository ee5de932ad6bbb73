package db

import (
	"context"

	"github.com/sentiqlab/sentiq/internal/identity/entity"
)

const queryGetUserByEmail = `
SELECT id, email, full_name, password, created_at, updated_at
FROM users
WHERE email = $1
`

// GetUserByEmail returns the user for an email, or goerror.ErrNotFound.
func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx, queryGetUserByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

const queryCreateUser = `
INSERT INTO users (id, email, full_name, password, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
`

// CreateUser inserts an account; a duplicate email maps to goerror.ErrConflict.
func (s *DB) CreateUser(ctx context.Context, user entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, queryCreateUser, user.ID, user.Email, user.FullName, user.Password)
	return s.mapError(err)
}
