package domain

import "time"

// AuditLog represents an account audit event. UserID is empty when the actor is unknown (e.g. login for an unknown email).
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
