// Package auth owns the session credential: acquisition, caching and
// freshness checks. The broker is the only writer of the cached credential;
// the publisher and the coordinator read it concurrently.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
)

// DefaultMargin is the freshness margin used everywhere a credential is about
// to back an operation that outlives a brief network round trip.
const DefaultMargin = 10 * time.Second

// Broker caches one Credential per session. Reads are shared; a refresh holds
// the write lock for the whole token round trip so no reader ever observes a
// half-updated credential and concurrent Ensure calls collapse into a single
// refresh.
type Broker struct {
	mu      sync.RWMutex
	log     *slog.Logger
	vendor  contract.TokenVendor
	session domain.Session
	cred    domain.Credential
	now     func() time.Time
}

func NewBroker(log *slog.Logger, vendor contract.TokenVendor, session domain.Session) *Broker {
	return &Broker{log: log, vendor: vendor, session: session, now: time.Now}
}

// Credential returns the cached credential. Zero value until the first
// refresh.
func (b *Broker) Credential() domain.Credential {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cred
}

// Fresh reports whether the cached credential will outlive the margin.
func (b *Broker) Fresh(margin time.Duration) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cred.Fresh(b.now(), margin)
}

// Refresh replaces the cached credential through the token vendor. Any
// channel opened under the previous credential is invalid afterwards: callers
// must close and reopen their subscriptions.
func (b *Broker) Refresh(ctx context.Context) (domain.Credential, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshLocked(ctx)
}

// Ensure refreshes only when the cached credential is stale for the margin.
// It reports whether a refresh happened, so the caller knows a reopen of any
// live subscription is due.
func (b *Broker) Ensure(ctx context.Context, margin time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cred.Fresh(b.now(), margin) {
		return false, nil
	}
	if _, err := b.refreshLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Broker) refreshLocked(ctx context.Context) (domain.Credential, error) {
	cred, err := b.vendor.IssueToken(ctx, b.session.UserName, b.session.UserID)
	if err != nil {
		if stderrors.Is(err, errors.ErrAuth) {
			return domain.Credential{}, err
		}
		return domain.Credential{}, fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	if cred.Token == "" || !cred.ExpiresAt.After(b.now()) {
		return domain.Credential{}, fmt.Errorf("%w: vendor returned an unusable credential", errors.ErrAuth)
	}
	b.cred = cred
	b.log.Info("Credential refreshed",
		"user", b.session.UserName,
		"expires_in", cred.ExpiresAt.Sub(b.now()).Round(time.Second))
	return cred, nil
}
