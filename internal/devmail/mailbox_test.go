package devmail

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"account-service/internal/mail"
)

var _ mail.Sender = (*Mailbox)(nil)

func TestMailbox_SendThenLatest(t *testing.T) {
	box := NewMailbox()
	ctx := context.Background()
	exp := time.Now().UTC().Add(15 * time.Minute)

	if err := box.SendPasswordReset(ctx, "A@X.com", "tok-1", exp); err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
	msg, ok := box.Latest(ctx, "a@x.com")
	if !ok {
		t.Fatal("Latest should find the token (case-insensitive email)")
	}
	if msg.Token != "tok-1" || !msg.ExpiresAt.Equal(exp) {
		t.Errorf("msg = %+v", msg)
	}
}

func TestMailbox_LatestReplacesEarlier(t *testing.T) {
	box := NewMailbox()
	ctx := context.Background()
	exp := time.Now().UTC().Add(time.Minute)

	_ = box.SendPasswordReset(ctx, "a@x.com", "tok-1", exp)
	_ = box.SendPasswordReset(ctx, "a@x.com", "tok-2", exp)

	msg, ok := box.Latest(ctx, "a@x.com")
	if !ok || msg.Token != "tok-2" {
		t.Errorf("Latest = %+v, %v; want tok-2", msg, ok)
	}
}

func TestMailbox_Missing(t *testing.T) {
	box := NewMailbox()
	if _, ok := box.Latest(context.Background(), "nobody@x.com"); ok {
		t.Error("Latest should report missing mailbox")
	}
}

func TestMailbox_ExpiredIsDropped(t *testing.T) {
	box := NewMailbox()
	ctx := context.Background()
	_ = box.SendPasswordReset(ctx, "a@x.com", "tok-1", time.Now().UTC().Add(-time.Second))

	if _, ok := box.Latest(ctx, "a@x.com"); ok {
		t.Error("expired token should not be returned")
	}
	box.mu.RLock()
	_, still := box.m["a@x.com"]
	box.mu.RUnlock()
	if still {
		t.Error("expired entry should be removed")
	}
}

func TestMailbox_ClockAdvances(t *testing.T) {
	box := NewMailbox()
	now := time.Now().UTC()
	box.nowF = func() time.Time { return now }
	ctx := context.Background()
	_ = box.SendPasswordReset(ctx, "a@x.com", "tok-1", now.Add(time.Minute))

	if _, ok := box.Latest(ctx, "a@x.com"); !ok {
		t.Fatal("token should be valid before expiry")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := box.Latest(ctx, "a@x.com"); ok {
		t.Error("token should expire once the clock passes ExpiresAt")
	}
}

func TestMailbox_Concurrent(t *testing.T) {
	box := NewMailbox()
	ctx := context.Background()
	exp := time.Now().UTC().Add(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("u%d@x.com", i%5)
			_ = box.SendPasswordReset(ctx, email, fmt.Sprintf("tok-%d", i), exp)
			box.Latest(ctx, email)
		}(i)
	}
	wg.Wait()
	for i := 0; i < 5; i++ {
		if _, ok := box.Latest(ctx, fmt.Sprintf("u%d@x.com", i)); !ok {
			t.Errorf("u%d@x.com should have a token", i)
		}
	}
}
