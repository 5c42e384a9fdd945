package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"account-service/internal/db"
	"account-service/internal/theme/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a theme repository that uses the given db for persistence.
func NewPostgresRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) ListCatalog(ctx context.Context) ([]domain.Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM themes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var out []domain.Theme
	for rows.Next() {
		var t domain.Theme
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return out, nil
}

// GetUserThemeNames reads the user's theme ids in insertion order, then resolves them against the catalog.
// Ids that no longer resolve are skipped.
func (r *PostgresRepository) GetUserThemeNames(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT theme_id FROM users_theme WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user themes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user theme: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user themes: %w", err)
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	catalog, err := r.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(catalog))
	for _, t := range catalog {
		names[t.ID] = t.Name
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// InsertUserThemes runs in one transaction: every association row plus the users.theme_defined flag.
func (r *PostgresRepository) InsertUserThemes(ctx context.Context, userID string, themeIDs []string) (_ []domain.UserTheme, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	out := make([]domain.UserTheme, 0, len(themeIDs))
	for _, themeID := range themeIDs {
		ut := domain.UserTheme{ID: uuid.New().String(), UserID: userID, ThemeID: themeID}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO users_theme (id, user_id, theme_id) VALUES ($1, $2, $3)`,
			ut.ID, ut.UserID, ut.ThemeID,
		); err != nil {
			if db.IsForeignKeyViolation(err) {
				err = domain.ErrUnknownUser
				return nil, err
			}
			return nil, fmt.Errorf("insert user theme: %w", err)
		}
		out = append(out, ut)
	}

	res, err := tx.ExecContext(ctx, `UPDATE users SET theme_defined = TRUE, updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("mark theme defined: %w", err)
	}
	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		err = domain.ErrUnknownUser
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// SeedCatalog inserts the given themes in one transaction, skipping any whose id or name already exists.
// Returns the number of themes inserted.
func (r *PostgresRepository) SeedCatalog(ctx context.Context, themes []domain.Theme) (inserted int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, t := range themes {
		res, err := tx.ExecContext(ctx, `INSERT INTO themes (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`, t.ID, t.Name)
		if err != nil {
			return 0, fmt.Errorf("seed theme %s: %w", t.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("seed theme %s: %w", t.Name, err)
		}
		inserted += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}
