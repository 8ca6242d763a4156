package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"

	"go.uber.org/zap"
)

type fakeOutbox struct {
	mu     sync.Mutex
	emails map[int64]*domain.OutboxEmail
	nextID int64
}

func newFakeOutbox() *fakeOutbox {
	return &fakeOutbox{emails: make(map[int64]*domain.OutboxEmail), nextID: 1}
}

func (f *fakeOutbox) Enqueue(ctx context.Context, email *domain.OutboxEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	email.ID = f.nextID
	f.nextID++
	email.Status = "pending"
	email.NextAttemptAt = time.Now()
	f.emails[email.ID] = email
	return nil
}

func (f *fakeOutbox) ClaimDue(ctx context.Context, limit int) ([]*domain.OutboxEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	due := make([]*domain.OutboxEmail, 0)
	for id := int64(1); id < f.nextID && len(due) < limit; id++ {
		email, exists := f.emails[id]
		if exists && email.Status == "pending" && !email.NextAttemptAt.After(now) {
			due = append(due, email)
		}
	}
	return due, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, exists := f.emails[id]
	if !exists {
		return repository.ErrOutboxEmailNotFound
	}
	now := time.Now()
	email.Status = "sent"
	email.SentAt = &now
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id int64, lastError string, nextAttemptAt time.Time, final bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, exists := f.emails[id]
	if !exists {
		return repository.ErrOutboxEmailNotFound
	}
	email.Attempts++
	email.LastError = lastError
	email.NextAttemptAt = nextAttemptAt
	if final {
		email.Status = "failed"
	}
	return nil
}

func (f *fakeOutbox) status(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, exists := f.emails[id]
	if !exists {
		return ""
	}
	return email.Status
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    [][]string
	failFor int // fail the first N sends
}

func (m *fakeMailer) Send(recipients []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor > 0 {
		m.failFor--
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, recipients)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func enqueueTestEmail(t *testing.T, outbox *fakeOutbox) *domain.OutboxEmail {
	t.Helper()
	email := &domain.OutboxEmail{
		Recipients: domain.StringList{"sales@techbucket.com.np"},
		Subject:    "New Quote Request - Router X1",
		Body:       "details",
	}
	if err := outbox.Enqueue(context.Background(), email); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	return email
}

func TestDispatchOnceDeliversAndMarksSent(t *testing.T) {
	outbox := newFakeOutbox()
	mailer := &fakeMailer{}
	d := NewDispatcher(outbox, mailer, zap.NewNop())

	email := enqueueTestEmail(t, outbox)

	d.DispatchOnce(context.Background())

	if len(mailer.sent) != 1 {
		t.Fatalf("Expected 1 delivery, got %d", len(mailer.sent))
	}
	if email.Status != "sent" {
		t.Errorf("Expected status sent, got %s", email.Status)
	}
	if email.SentAt == nil {
		t.Error("Expected sent_at to be stamped")
	}

	// A second pass must not redeliver
	d.DispatchOnce(context.Background())
	if len(mailer.sent) != 1 {
		t.Errorf("Email redelivered: %d deliveries", len(mailer.sent))
	}
}

func TestDispatchOnceRetriesWithBackoff(t *testing.T) {
	outbox := newFakeOutbox()
	mailer := &fakeMailer{failFor: 1}
	d := NewDispatcher(outbox, mailer, zap.NewNop())

	email := enqueueTestEmail(t, outbox)

	before := time.Now()
	d.DispatchOnce(context.Background())

	if email.Status != "pending" {
		t.Errorf("Expected status to stay pending after a transient failure, got %s", email.Status)
	}
	if email.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", email.Attempts)
	}
	if email.LastError == "" {
		t.Error("Expected the delivery error to be recorded")
	}
	if email.NextAttemptAt.Before(before.Add(baseBackoff - time.Second)) {
		t.Errorf("Expected next attempt pushed at least %v out, got %v", baseBackoff, email.NextAttemptAt.Sub(before))
	}

	// Not due yet, so nothing happens
	d.DispatchOnce(context.Background())
	if len(mailer.sent) != 0 {
		t.Error("Email delivered before its backoff elapsed")
	}

	// Once due again, delivery succeeds
	email.NextAttemptAt = time.Now().Add(-time.Second)
	d.DispatchOnce(context.Background())
	if email.Status != "sent" {
		t.Errorf("Expected status sent after retry, got %s", email.Status)
	}
}

func TestDispatchOnceGivesUpAfterMaxAttempts(t *testing.T) {
	outbox := newFakeOutbox()
	mailer := &fakeMailer{failFor: maxAttempts + 1}
	d := NewDispatcher(outbox, mailer, zap.NewNop())

	email := enqueueTestEmail(t, outbox)

	for i := 0; i < maxAttempts; i++ {
		email.NextAttemptAt = time.Now().Add(-time.Second)
		d.DispatchOnce(context.Background())
	}

	if email.Status != "failed" {
		t.Errorf("Expected status failed after %d attempts, got %s", maxAttempts, email.Status)
	}
	if email.Attempts != maxAttempts {
		t.Errorf("Expected %d attempts, got %d", maxAttempts, email.Attempts)
	}

	// Failed emails are never claimed again
	email.NextAttemptAt = time.Now().Add(-time.Second)
	d.DispatchOnce(context.Background())
	if email.Attempts != maxAttempts {
		t.Errorf("Failed email was retried: %d attempts", email.Attempts)
	}
}

func TestBackoffDoublesPerAttempt(t *testing.T) {
	expected := []time.Duration{
		baseBackoff,
		2 * baseBackoff,
		4 * baseBackoff,
		8 * baseBackoff,
	}
	for i, want := range expected {
		if got := backoff(i + 1); got != want {
			t.Errorf("backoff(%d) = %v, want %v", i+1, got, want)
		}
	}
}

func TestStartAndStop(t *testing.T) {
	outbox := newFakeOutbox()
	d := NewDispatcher(outbox, &fakeMailer{}, zap.NewNop())
	d.pollInterval = 10 * time.Millisecond

	enqueueTestEmail(t, outbox)

	d.Start()
	deadline := time.After(2 * time.Second)
	for outbox.status(1) != "sent" {
		select {
		case <-deadline:
			t.Fatal("Dispatcher did not deliver within 2s")
		case <-time.After(10 * time.Millisecond):
		}
	}

	d.Stop()
	// Stop is idempotent
	d.Stop()
}
