// Package postgres stores users and their activity documents in Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id text PRIMARY KEY,
	email text UNIQUE NOT NULL,
	password_hash text NOT NULL,
	name text,
	created_at timestamptz DEFAULT now()
);
CREATE TABLE IF NOT EXISTS states (
	user_id text PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	data jsonb NOT NULL,
	updated_at timestamptz DEFAULT now()
);`

const uniqueViolation = "23505"

// Connect opens a pool and ensures the schema exists.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UserRepository implements repository.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return "", errors.New("user email and password hash are required")
	}
	id := uuid.NewString()
	var createdAt time.Time
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		id, user.Email, user.PasswordHash, nullIfEmpty(user.Name),
	).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", repository.ErrAlreadyExists
		}
		return "", err
	}
	user.ID = id
	user.CreatedAt = createdAt
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, password_hash, coalesce(name, ''), created_at FROM users WHERE email=$1`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, password_hash, coalesce(name, ''), created_at FROM users WHERE id=$1`, id)
}

func (r *UserRepository) get(ctx context.Context, query string, arg string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// StateRepository implements repository.StateRepository over the states table.
type StateRepository struct {
	pool *pgxpool.Pool
}

func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

func (r *StateRepository) Get(ctx context.Context, userID string) ([]byte, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM states WHERE user_id=$1`, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *StateRepository) Put(ctx context.Context, userID string, data []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO states (user_id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		userID, string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrUpdateFailed, err)
	}
	return nil
}

func (r *StateRepository) Seed(ctx context.Context, userID string, data []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO states (user_id, data, updated_at) VALUES ($1, $2, now()) ON CONFLICT (user_id) DO NOTHING`,
		userID, string(data),
	)
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
