package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the store translates into sentinel errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrEmailTaken is returned when another user already registered the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnknownUser is returned when an application references a missing user.
	ErrUnknownUser = errors.New("user does not exist")
)

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

const userColumns = `id, COALESCE(name, ''), email, COALESCE(phone, ''), skills, education, work_history, created_at`

// CreateUser inserts a new user profile.
func (db *DB) CreateUser(ctx context.Context, input *UserCreateInput) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, skills, education, work_history)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		input.Name, nullIfEmpty(input.Email), input.Phone, input.Skills, input.Education, input.WorkHistory,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Skills, &u.Education, &u.WorkHistory, &u.CreatedAt)
	if err != nil {
		if hasPgCode(err, pgUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by ID. Returns nil, nil when no user exists.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Skills, &u.Education, &u.WorkHistory, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
