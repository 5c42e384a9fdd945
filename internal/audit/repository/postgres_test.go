package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-service/internal/audit/domain"
)

var _ Repository = (*PostgresRepository)(nil)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewPostgresRepository(conn), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+audit_logs\s*\(id,\s*user_id,\s*action,\s*ip,\s*metadata,\s*created_at\)`).
		WithArgs("a-1", "u-1", "login_success", "10.0.0.1", "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.AuditLog{
		ID: "a-1", UserID: "u-1", Action: "login_success", IP: "10.0.0.1", CreatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT\s+INTO\s+audit_logs`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.AuditLog{ID: "a-1", Action: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
