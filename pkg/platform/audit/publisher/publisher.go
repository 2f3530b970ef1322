package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	id "onboarding/pkg/domain"
	audit "onboarding/pkg/platform/audit"
	"onboarding/pkg/platform/audit/worker"
	"onboarding/pkg/requestcontext"
)

var (
	ErrBufferFull = errors.New("audit buffer full")
	ErrClosed     = errors.New("audit publisher closed")
)

// Publisher records audit events. In sync mode each Emit appends directly to
// the store. In async mode events are queued and persisted by a background
// worker; Close drains the queue.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	buffer int

	mu     sync.RWMutex
	closed bool
	inbox  chan audit.Event
	done   chan struct{}
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a queue of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.buffer = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.inbox = make(chan audit.Event, p.buffer)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.inbox, worker.WithErrorHandler(p.reportFailure))
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.SessionID.IsNil() {
		event.SessionID = requestcontext.SessionID(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.WarnContext(ctx, "audit event dropped",
			"action", event.Action,
			"session_id", event.SessionID.String(),
		)
		return ErrBufferFull
	}
}

func (p *Publisher) List(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

// Close stops accepting events and, in async mode, waits for queued events
// to be persisted. It is safe to call more than once.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
}

func (p *Publisher) reportFailure(event audit.Event, err error) {
	p.logger.Error("failed to persist audit event",
		"action", event.Action,
		"session_id", event.SessionID.String(),
		"error", err,
	)
}
