// Package mail delivers password-recovery challenges to a user's mailbox.
package mail

import (
	"context"
	"time"
)

// Sender hands a recovery token to the email transport. Delivery and templating belong to the transport.
type Sender interface {
	SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error
}
