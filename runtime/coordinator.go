// Package runtime hosts the session coordinator: the single writer of the
// session's subscription lifecycle. Language switches, scheduled credential
// reconnections and failure recovery all funnel through it, one at a time.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"translate-chat/auth"
	"translate-chat/channel"
	"translate-chat/contract"
	"translate-chat/errors"
	"translate-chat/observability"
	"translate-chat/runtime/workers"
)

// State is the coordinator lifecycle.
type State int32

const (
	StateIdle State = iota
	StateSwitching
	StateSubscribed
	StateRefreshing
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwitching:
		return "switching"
	case StateSubscribed:
		return "subscribed"
	case StateRefreshing:
		return "refreshing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionCoordinator serializes every mutation of the session's subscription.
// opMu admits one operation at a time; a language switch arriving while
// another is in flight cancels the older one, which aborts at its next
// suspension point and reports ErrSwitchSuperseded.
//
// Delivery exclusion is structural: the forwarder goroutine of the old
// subscription is cancelled and awaited before the old handle closes, so no
// event of the previous language can reach the sink after a switch returns.
type SessionCoordinator struct {
	log        *slog.Logger
	broker     *auth.Broker
	manager    *channel.Manager
	history    contract.HistoryProvider
	sink       contract.EventSink
	metrics    *observability.SessionMetrics
	refresher  *workers.Refresher
	supervisor *workers.Supervisor

	opMu sync.Mutex

	st           sync.Mutex
	state        State
	language     string
	handle       *channel.SubscriptionHandle
	fwdCancel    context.CancelFunc
	fwdDone      chan struct{}
	switchCancel context.CancelFunc
	switchGen    uint64
}

func NewSessionCoordinator(
	log *slog.Logger,
	broker *auth.Broker,
	manager *channel.Manager,
	history contract.HistoryProvider,
	sink contract.EventSink,
	metrics *observability.SessionMetrics,
	refreshInterval time.Duration,
) *SessionCoordinator {
	c := &SessionCoordinator{
		log:        log,
		broker:     broker,
		manager:    manager,
		history:    history,
		sink:       sink,
		metrics:    metrics,
		supervisor: workers.NewSupervisor(log),
	}
	c.refresher = workers.NewRefresher(log, refreshInterval, func(ctx context.Context) error {
		return c.Reopen(ctx, true)
	})
	c.supervisor.Add(c.refresher)
	return c
}

// Run blocks until the context ends, driving the scheduled reconnection
// worker and the metrics snapshot loop. The live subscription, if any, is
// torn down on the way out.
func (c *SessionCoordinator) Run(ctx context.Context) error {
	go c.metrics.Listen(ctx)
	c.supervisor.Run(ctx)
	c.Shutdown()
	return nil
}

// State returns the current lifecycle state.
func (c *SessionCoordinator) State() State {
	c.st.Lock()
	defer c.st.Unlock()
	return c.state
}

// Language returns the language the session is (or was last) subscribed to.
func (c *SessionCoordinator) Language() string {
	c.st.Lock()
	defer c.st.Unlock()
	return c.language
}

// SetLanguage switches the session to the given language: snapshot of the
// latest messages, then close-before-open of the topic subscription. Calling
// it again while a switch is in flight supersedes the older call. Switching
// to the language already live is a no-op.
func (c *SessionCoordinator) SetLanguage(ctx context.Context, language string) error {
	if language == "" {
		return fmt.Errorf("%w: empty language", errors.ErrChannel)
	}

	c.st.Lock()
	if c.switchCancel != nil {
		c.switchCancel()
	}
	switchCtx, cancel := context.WithCancel(ctx)
	c.switchGen++
	gen := c.switchGen
	c.switchCancel = cancel
	c.st.Unlock()
	defer func() {
		c.st.Lock()
		if c.switchGen == gen {
			c.switchCancel = nil
		}
		c.st.Unlock()
		cancel()
	}()

	abort := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.ErrSwitchSuperseded
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if switchCtx.Err() != nil {
		return abort()
	}

	c.st.Lock()
	already := c.handle != nil && c.handle.Language() == language && c.state == StateSubscribed
	c.st.Unlock()
	if already {
		c.log.Debug("Already subscribed", "language", language)
		return nil
	}

	c.setState(StateSwitching)

	if _, err := c.broker.Ensure(switchCtx, auth.DefaultMargin); err != nil {
		c.revertState()
		if switchCtx.Err() != nil {
			return abort()
		}
		return err
	}

	// Fetched before the old subscription closes: a history failure leaves
	// the previous language fully functional.
	snapshot, err := c.history.LatestMessages(switchCtx, language)
	if err != nil {
		c.revertState()
		if switchCtx.Err() != nil {
			return abort()
		}
		return err
	}

	if switchCtx.Err() != nil {
		c.revertState()
		return abort()
	}

	c.stopForwarder()
	c.manager.Close(ctx, c.takeHandle())

	handle, err := c.manager.Open(switchCtx, c.broker.Credential(), language)
	if err != nil {
		if switchCtx.Err() != nil {
			c.setState(StateIdle)
			return abort()
		}
		c.fail(err)
		return err
	}
	if switchCtx.Err() != nil {
		// Superseded between the dial and the handover: the newer switch
		// owns the slot, this handle must not survive.
		c.manager.Close(context.Background(), handle)
		c.setState(StateIdle)
		return abort()
	}

	c.sink.ReplaceHistory(snapshot)
	c.startForwarder(handle)

	c.st.Lock()
	c.handle = handle
	c.language = language
	c.state = StateSubscribed
	c.st.Unlock()

	c.refresher.Reset()
	c.metrics.SetLanguage(language)
	c.metrics.AddEvent("switch", language)
	c.log.Info("Language switched", "language", language, "history", len(snapshot))
	return nil
}

// Reopen tears the live subscription down and dials it again on the same
// language. With forceRefresh the credential is reissued unconditionally;
// otherwise it is only refreshed when stale. No-op while no language is set.
func (c *SessionCoordinator) Reopen(ctx context.Context, forceRefresh bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.st.Lock()
	language := c.language
	c.st.Unlock()
	if language == "" {
		return nil
	}

	c.setState(StateRefreshing)

	if forceRefresh {
		if _, err := c.broker.Refresh(ctx); err != nil {
			c.revertState()
			return err
		}
		c.metrics.IncrTokenRefreshes()
	} else {
		refreshed, err := c.broker.Ensure(ctx, auth.DefaultMargin)
		if err != nil {
			c.revertState()
			return err
		}
		if refreshed {
			c.metrics.IncrTokenRefreshes()
		}
	}

	c.stopForwarder()
	c.manager.Close(ctx, c.takeHandle())

	handle, err := c.manager.Open(ctx, c.broker.Credential(), language)
	if err != nil {
		c.fail(err)
		return err
	}
	c.startForwarder(handle)

	c.st.Lock()
	c.handle = handle
	c.state = StateSubscribed
	c.st.Unlock()

	c.refresher.Reset()
	c.metrics.IncrReconnects()
	c.metrics.AddEvent("reconnect", language)
	c.log.Info("Subscription reopened", "language", language, "forced", forceRefresh)
	return nil
}

// Shutdown closes the live subscription and returns the coordinator to idle.
// The last language is kept so a later Reopen can resume.
func (c *SessionCoordinator) Shutdown() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.stopForwarder()
	c.manager.Close(context.Background(), c.takeHandle())

	c.st.Lock()
	c.state = StateIdle
	c.st.Unlock()
	c.log.Info("Session coordinator shut down")
}

// Stop cancels the supervised workers; Run unblocks once they have exited.
func (c *SessionCoordinator) Stop() {
	c.supervisor.Stop()
}

func (c *SessionCoordinator) setState(s State) {
	c.st.Lock()
	c.state = s
	c.st.Unlock()
}

// revertState restores the state after a failure that left the previous
// subscription untouched.
func (c *SessionCoordinator) revertState() {
	c.st.Lock()
	if c.handle != nil {
		c.state = StateSubscribed
	} else {
		c.state = StateIdle
	}
	c.st.Unlock()
}

// fail marks the coordinator failed with nothing live and reports to the
// sink. The scheduled reconnection worker retries on its next tick.
func (c *SessionCoordinator) fail(err error) {
	c.st.Lock()
	c.state = StateFailed
	c.st.Unlock()
	c.metrics.AddEvent("error", err.Error())
	c.sink.Failure(err)
}

func (c *SessionCoordinator) takeHandle() *channel.SubscriptionHandle {
	c.st.Lock()
	defer c.st.Unlock()
	handle := c.handle
	c.handle = nil
	return handle
}

// startForwarder pumps the handle's stream into the sink until the stream
// ends or the forwarder is cancelled. Events still buffered when the
// forwarder stops are dropped with the old subscription.
func (c *SessionCoordinator) startForwarder(handle *channel.SubscriptionHandle) {
	fwdCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.st.Lock()
	c.fwdCancel = cancel
	c.fwdDone = done
	c.st.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-fwdCtx.Done():
				return
			case msg, ok := <-handle.Stream().Events():
				if !ok {
					if err := handle.Stream().Err(); err != nil {
						c.streamFailed(handle, err)
					}
					return
				}
				c.sink.Deliver(msg)
				c.metrics.IncrDelivered()
			}
		}
	}()
}

// stopForwarder cancels the forwarder and waits for it to exit. After it
// returns, nothing will be delivered from the previous subscription.
func (c *SessionCoordinator) stopForwarder() {
	c.st.Lock()
	cancel, done := c.fwdCancel, c.fwdDone
	c.fwdCancel, c.fwdDone = nil, nil
	c.st.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// streamFailed handles a mid-stream termination of the live subscription.
func (c *SessionCoordinator) streamFailed(handle *channel.SubscriptionHandle, err error) {
	c.st.Lock()
	if c.handle == handle {
		c.state = StateFailed
		c.handle = nil
	}
	c.st.Unlock()

	c.log.Warn("Live subscription lost", "error", err)
	c.metrics.IncrStreamErrors()
	c.metrics.AddEvent("stream_error", err.Error())
	c.sink.Failure(err)
}
