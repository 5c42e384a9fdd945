package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"account-service/internal/db"
	"account-service/internal/user/domain"
)

const userColumns = `id, email, password_hash, google_id, theme_defined, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail returns the user with the given email (case-insensitive), or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
// The unique index on lower(email) is the final authority on email uniqueness.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, nullString(u.PasswordHash), nullString(u.GoogleID), u.ThemeDefined, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of p in a single statement and returns the updated row.
// Returns nil, nil if no user has p.ID.
func (r *PostgresRepository) Update(ctx context.Context, p domain.Patch) (*domain.User, error) {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET
			email = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			google_id = COALESCE($4, google_id),
			theme_defined = COALESCE($5, theme_defined),
			updated_at = $6
		WHERE id = $1
		RETURNING `+userColumns,
		p.ID, nullStringPtr(p.Email), nullStringPtr(p.PasswordHash), nullStringPtr(p.GoogleID), nullBoolPtr(p.ThemeDefined), updatedAt,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u            domain.User
		passwordHash sql.NullString
		googleID     sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &passwordHash, &googleID, &u.ThemeDefined, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.PasswordHash = passwordHash.String
	u.GoogleID = googleID.String
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullBoolPtr(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
