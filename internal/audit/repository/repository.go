package repository

import (
	"context"

	"account-service/internal/audit/domain"
)

// Repository defines persistence for audit logs. Audit logs are append-only.
type Repository interface {
	Create(ctx context.Context, a *domain.AuditLog) error
}
