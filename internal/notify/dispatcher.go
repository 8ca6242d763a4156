package notify

import (
	"context"
	"sync"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 15 * time.Second
	defaultBatchSize    = 10
	maxAttempts         = 5
	baseBackoff         = 30 * time.Second
)

// Dispatcher drains the email outbox in the background. Claimed rows are
// locked with SKIP LOCKED so multiple instances can run side by side.
type Dispatcher struct {
	outboxRepo   repository.OutboxRepository
	mailer       Mailer
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewDispatcher creates a new outbox dispatcher
func NewDispatcher(outboxRepo repository.OutboxRepository, mailer Mailer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		outboxRepo:   outboxRepo,
		mailer:       mailer,
		logger:       logger,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
	}
}

// Start launches the polling loop. Call Stop to shut it down.
func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})

	go func() {
		defer close(d.done)

		ticker := time.NewTicker(d.pollInterval)
		defer ticker.Stop()

		d.logger.Info("email dispatcher started",
			zap.Duration("poll_interval", d.pollInterval),
			zap.Int("batch_size", d.batchSize),
		)

		for {
			select {
			case <-ctx.Done():
				d.logger.Info("email dispatcher stopped")
				return
			case <-ticker.C:
				d.DispatchOnce(ctx)
			}
		}
	}()
}

// Stop shuts the dispatcher down and waits for the in-flight batch
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		if d.cancel != nil {
			d.cancel()
			<-d.done
		}
	})
}

// DispatchOnce claims and delivers one batch of due emails. Exposed so
// delivery can be driven directly in tests.
func (d *Dispatcher) DispatchOnce(ctx context.Context) {
	emails, err := d.outboxRepo.ClaimDue(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("failed to claim outbox emails", zap.Error(err))
		return
	}

	for _, email := range emails {
		if err := d.mailer.Send(email.Recipients, email.Subject, email.Body); err != nil {
			attempt := email.Attempts + 1
			final := attempt >= maxAttempts
			nextAttempt := time.Now().Add(backoff(attempt))

			d.logger.Warn("email delivery failed",
				zap.Int64("email_id", email.ID),
				zap.Int("attempt", attempt),
				zap.Bool("final", final),
				zap.Error(err),
			)

			if markErr := d.outboxRepo.MarkFailed(ctx, email.ID, err.Error(), nextAttempt, final); markErr != nil {
				d.logger.Error("failed to record delivery failure",
					zap.Int64("email_id", email.ID),
					zap.Error(markErr),
				)
			}
			continue
		}

		if err := d.outboxRepo.MarkSent(ctx, email.ID); err != nil {
			d.logger.Error("failed to mark email as sent",
				zap.Int64("email_id", email.ID),
				zap.Error(err),
			)
			continue
		}

		d.logger.Info("email delivered",
			zap.Int64("email_id", email.ID),
			zap.String("subject", email.Subject),
		)
	}
}

// backoff doubles the delay per attempt: 30s, 1m, 2m, 4m, ...
func backoff(attempt int) time.Duration {
	delay := baseBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}
