// Package devmail is an in-memory mailbox for recovery tokens, used instead of real email only in dev mode
// (RECOVERY_RETURN_TO_CLIENT). The DevService reads it back.
package devmail

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Message is the latest recovery token delivered to an address.
type Message struct {
	Token     string
	ExpiresAt time.Time
}

// Mailbox keeps the most recent recovery token per email. It implements mail.Sender.
type Mailbox struct {
	mu   sync.RWMutex
	m    map[string]Message
	nowF func() time.Time
}

// NewMailbox returns an empty dev mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		m:    make(map[string]Message),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// SendPasswordReset stores token for email until expiresAt, replacing any earlier token.
func (b *Mailbox) SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key(email)] = Message{Token: token, ExpiresAt: expiresAt}
	return nil
}

// Latest returns the token delivered to email if present and not expired. Expired entries are dropped.
func (b *Mailbox) Latest(ctx context.Context, email string) (Message, bool) {
	k := key(email)
	b.mu.RLock()
	msg, ok := b.m[k]
	b.mu.RUnlock()
	if !ok {
		return Message{}, false
	}
	if !msg.ExpiresAt.After(b.nowF()) {
		b.mu.Lock()
		delete(b.m, k)
		b.mu.Unlock()
		return Message{}, false
	}
	return msg, true
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
