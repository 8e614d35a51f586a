// Package observability aggregates session counters for the UI and logs.
package observability

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// RecentEventInfo is one lifecycle event kept for display.
type RecentEventInfo struct {
	Kind      string `json:"kind"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}

// SessionStats is a point-in-time snapshot of the session counters.
type SessionStats struct {
	Language string `json:"language"`

	MessagesDelivered uint64  `json:"messages_delivered"`
	MessagesPublished uint64  `json:"messages_published"`
	DeliveryRate      float64 `json:"delivery_rate"` // messages/s over the last interval

	Reconnects     uint64 `json:"reconnects"`
	TokenRefreshes uint64 `json:"token_refreshes"`
	StreamErrors   uint64 `json:"stream_errors"`
	ImagesStaged   uint64 `json:"images_staged"`

	RecentEvents []RecentEventInfo `json:"recent_events"`
}

const maxRecentEvents = 20

// SessionMetrics collects counters from the coordinator, publisher and
// workers. Counter increments are atomic; the snapshot is guarded.
type SessionMetrics struct {
	log    *slog.Logger
	mu     sync.RWMutex
	latest SessionStats

	MessagesDelivered uint64
	MessagesPublished uint64
	Reconnects        uint64
	TokenRefreshes    uint64
	StreamErrors      uint64
	ImagesStaged      uint64

	deliveredAtCheck uint64
	LastCheck        time.Time
}

func NewSessionMetrics(log *slog.Logger) *SessionMetrics {
	return &SessionMetrics{
		log:       log,
		LastCheck: time.Now(),
		latest: SessionStats{
			RecentEvents: make([]RecentEventInfo, 0),
		},
	}
}

func (sm *SessionMetrics) IncrDelivered() {
	atomic.AddUint64(&sm.MessagesDelivered, 1)
}

func (sm *SessionMetrics) IncrPublished() {
	atomic.AddUint64(&sm.MessagesPublished, 1)
}

func (sm *SessionMetrics) IncrReconnects() {
	atomic.AddUint64(&sm.Reconnects, 1)
}

func (sm *SessionMetrics) IncrTokenRefreshes() {
	atomic.AddUint64(&sm.TokenRefreshes, 1)
}

func (sm *SessionMetrics) IncrStreamErrors() {
	atomic.AddUint64(&sm.StreamErrors, 1)
}

func (sm *SessionMetrics) IncrImagesStaged() {
	atomic.AddUint64(&sm.ImagesStaged, 1)
}

// SetLanguage records the language the session is currently subscribed to.
func (sm *SessionMetrics) SetLanguage(language string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.latest.Language = language
}

// AddEvent keeps a short history of lifecycle events, newest first.
func (sm *SessionMetrics) AddEvent(kind, detail string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	event := RecentEventInfo{
		Kind:      kind,
		Detail:    detail,
		Timestamp: time.Now().Format("15:04:05"),
	}

	sm.latest.RecentEvents = append([]RecentEventInfo{event}, sm.latest.RecentEvents...)
	if len(sm.latest.RecentEvents) > maxRecentEvents {
		sm.latest.RecentEvents = sm.latest.RecentEvents[:maxRecentEvents]
	}
}

// Listen refreshes the snapshot once per second until the context ends.
func (sm *SessionMetrics) Listen(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sm.log.Info("Session metrics stopped")
			return
		case <-ticker.C:
			sm.updateStats()
		}
	}
}

func (sm *SessionMetrics) updateStats() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	duration := now.Sub(sm.LastCheck).Seconds()

	delivered := atomic.LoadUint64(&sm.MessagesDelivered)
	if duration > 0 {
		sm.latest.DeliveryRate = float64(delivered-sm.deliveredAtCheck) / duration
	}
	sm.deliveredAtCheck = delivered
	sm.LastCheck = now

	sm.latest.MessagesDelivered = delivered
	sm.latest.MessagesPublished = atomic.LoadUint64(&sm.MessagesPublished)
	sm.latest.Reconnects = atomic.LoadUint64(&sm.Reconnects)
	sm.latest.TokenRefreshes = atomic.LoadUint64(&sm.TokenRefreshes)
	sm.latest.StreamErrors = atomic.LoadUint64(&sm.StreamErrors)
	sm.latest.ImagesStaged = atomic.LoadUint64(&sm.ImagesStaged)
}

// GetLatest returns the most recent snapshot. Counters are re-read so a
// caller polling between ticks still sees current totals.
func (sm *SessionMetrics) GetLatest() SessionStats {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	stats := sm.latest
	stats.MessagesDelivered = atomic.LoadUint64(&sm.MessagesDelivered)
	stats.MessagesPublished = atomic.LoadUint64(&sm.MessagesPublished)
	stats.Reconnects = atomic.LoadUint64(&sm.Reconnects)
	stats.TokenRefreshes = atomic.LoadUint64(&sm.TokenRefreshes)
	stats.StreamErrors = atomic.LoadUint64(&sm.StreamErrors)
	stats.ImagesStaged = atomic.LoadUint64(&sm.ImagesStaged)
	stats.RecentEvents = append([]RecentEventInfo(nil), stats.RecentEvents...)
	return stats
}
