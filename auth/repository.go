package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrUserNotFound signals that the user does not exist.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrDuplicateEmail signals that the email is already registered.
	ErrDuplicateEmail = errors.New("auth: email already exists")
)

// Repository handles data access for accounts.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID string) (User, error)
	UpsertExternalUser(ctx context.Context, externalUID, email, fullName string) (User, error)
}

// CreateUserParams contains write parameters for password-based accounts.
type CreateUserParams struct {
	Email        string
	FullName     string
	PasswordHash string
}

const userColumns = `id, external_uid, email, full_name, password_hash, created_at, updated_at`

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed auth repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CreateUser inserts a new password-based account.
func (r *PGRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	const insertSQL = `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, insertSQL, params.Email, params.FullName, params.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("auth: create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *PGRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const selectSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, selectSQL, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("auth: get user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *PGRepository) GetUserByID(ctx context.Context, userID string) (User, error) {
	const selectSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, selectSQL, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("auth: get user by id: %w", err)
	}

	return user, nil
}

// UpsertExternalUser looks up an account by external provider UID and
// creates it when absent. The single upsert statement keeps concurrent
// first-logins from racing into duplicate rows.
func (r *PGRepository) UpsertExternalUser(ctx context.Context, externalUID, email, fullName string) (User, error) {
	const upsertSQL = `
		INSERT INTO users (external_uid, email, full_name)
		VALUES ($1, NULLIF($2, ''), $3)
		ON CONFLICT (external_uid) DO UPDATE
		SET email = COALESCE(users.email, EXCLUDED.email),
		    full_name = CASE WHEN users.full_name = '' OR users.full_name IS NULL THEN EXCLUDED.full_name ELSE users.full_name END,
		    updated_at = now()
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, upsertSQL, externalUID, email, fullName))
	if err != nil {
		return User{}, fmt.Errorf("auth: upsert external user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		user         User
		externalUID  *string
		email        *string
		passwordHash *string
		fullName     *string
	)
	err := row.Scan(
		&user.ID,
		&externalUID,
		&email,
		&fullName,
		&passwordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}

	user.ExternalUID = externalUID
	user.Email = email
	user.PasswordHash = passwordHash
	if fullName != nil {
		user.FullName = *fullName
	}
	return user, nil
}
