// Package channel manages the lifecycle of the one live topic subscription a
// session is allowed to hold, and exposes its events as a message stream.
package channel

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
)

// TopicPrefix is the naming scheme of the language-partitioned topics.
const TopicPrefix = "chat-"

// Topic returns the stream topic for a language.
func Topic(language string) string {
	return TopicPrefix + language
}

// HandleState is the lifecycle of one subscription handle.
type HandleState int32

const (
	StateIdle HandleState = iota
	StateSubscribing
	StateActive
	StateCancelling
	StateClosed
)

func (s HandleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubscribing:
		return "subscribing"
	case StateActive:
		return "active"
	case StateCancelling:
		return "cancelling"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SubscriptionHandle is a cancellable reference to one live read loop bound
// to a (namespace, language) topic. It is exclusively owned by the Manager
// that created it. A transport or protocol error ends the loop and closes the
// stream with the error; the handle does not reopen itself.
type SubscriptionHandle struct {
	log      *slog.Logger
	language string
	topic    string
	sub      contract.TopicSubscription
	stream   *MessageStream
	state    atomic.Int32
	cancel   context.CancelFunc
	done     chan struct{}
	closing  sync.Once
}

func (h *SubscriptionHandle) Language() string { return h.language }

func (h *SubscriptionHandle) State() HandleState { return HandleState(h.state.Load()) }

// Stream returns the decoded message sequence of this handle.
func (h *SubscriptionHandle) Stream() *MessageStream { return h.stream }

// run is the read loop. It exits on cancellation (ordered close, stream ends
// clean) or on the first transport/protocol error (stream ends with the
// error, handle moves to Closed).
func (h *SubscriptionHandle) run(ctx context.Context) {
	defer close(h.done)

	for {
		env, err := h.sub.Recv(ctx)
		if err != nil {
			if ctx.Err() != nil {
				h.state.Store(int32(StateClosed))
				h.stream.end(nil)
				return
			}
			if !stderrors.Is(err, errors.ErrStream) {
				err = fmt.Errorf("%w: %v", errors.ErrStream, err)
			}
			h.fail(err)
			return
		}

		msg, err := domain.ParseMessage(env.Payload)
		if err != nil {
			// A malformed event is a protocol error: terminate, never
			// deliver a partial message.
			h.fail(fmt.Errorf("%w: %w", errors.ErrStream, err))
			return
		}

		select {
		case h.stream.events <- msg:
		case <-ctx.Done():
			h.state.Store(int32(StateClosed))
			h.stream.end(nil)
			return
		}
	}
}

func (h *SubscriptionHandle) fail(err error) {
	h.log.Warn("Subscription terminated", "topic", h.topic, "error", err)
	h.state.Store(int32(StateClosed))
	_ = h.sub.Close(context.Background())
	h.stream.end(err)
}

// close requests cancellation and blocks until the read loop has fully
// stopped. After it returns no further event will be produced on the stream.
func (h *SubscriptionHandle) close(ctx context.Context) {
	h.closing.Do(func() {
		h.state.Store(int32(StateCancelling))
		h.cancel()
		_ = h.sub.Close(ctx)
	})
	<-h.done
	h.state.Store(int32(StateClosed))
}

// Manager owns at most one live subscription per session. Open fails while a
// previous handle is still running; Close must be awaited before reopening.
type Manager struct {
	mu        sync.Mutex
	log       *slog.Logger
	transport contract.TopicTransport
	current   *SubscriptionHandle
}

func NewManager(log *slog.Logger, transport contract.TopicTransport) *Manager {
	return &Manager{log: log, transport: transport}
}

// Open subscribes to the language topic under the given credential and starts
// the read loop. It refuses to stack a second live handle on the session.
func (m *Manager) Open(ctx context.Context, cred domain.Credential, language string) (*SubscriptionHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		select {
		case <-m.current.done:
			// Previous loop fully stopped, the slot is free.
		default:
			return nil, fmt.Errorf("%w: %s still %s", errors.ErrSubscriptionExists,
				m.current.topic, m.current.State())
		}
	}

	h := &SubscriptionHandle{
		log:      m.log,
		language: language,
		topic:    Topic(language),
		done:     make(chan struct{}),
	}
	h.state.Store(int32(StateSubscribing))

	sub, err := m.transport.Subscribe(ctx, cred, h.topic)
	if err != nil {
		h.state.Store(int32(StateClosed))
		if stderrors.Is(err, errors.ErrChannel) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrChannel, err)
	}

	// First successful connection acknowledgment.
	h.state.Store(int32(StateActive))
	h.sub = sub
	h.stream = newMessageStream(64)

	loopCtx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.run(loopCtx)

	m.current = h
	m.log.Info("Subscription opened", "topic", h.topic)
	return h, nil
}

// Close tears a handle down and blocks until its read loop has observed the
// cancellation. Closing an already finished handle is a no-op.
func (m *Manager) Close(ctx context.Context, h *SubscriptionHandle) {
	if h == nil {
		return
	}
	h.close(ctx)

	m.mu.Lock()
	if m.current == h {
		m.current = nil
	}
	m.mu.Unlock()
	m.log.Info("Subscription closed", "topic", h.topic)
}

// Current returns the live handle, or nil when none is open.
func (m *Manager) Current() *SubscriptionHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	select {
	case <-m.current.done:
		return nil
	default:
		return m.current
	}
}
