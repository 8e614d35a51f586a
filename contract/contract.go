//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"

	"translate-chat/domain"
)

// TokenVendor issues time-limited credentials for a user identity.
// The hosted implementation lives in package api; a local JWT vendor for
// development lives in package auth.
type TokenVendor interface {
	IssueToken(ctx context.Context, userName string, userID uuid.UUID) (domain.Credential, error)
}

// CatalogProvider returns the ordered set of supported languages.
type CatalogProvider interface {
	SupportedLanguages(ctx context.Context) (domain.LanguageCatalog, error)
}

// HistoryProvider fetches the recent-history snapshot for one language.
type HistoryProvider interface {
	LatestMessages(ctx context.Context, language string) ([]domain.ChatMessage, error)
}

// Envelope is one raw transport event. The transport distinguishes encoding,
// not content type: text and binary frames carry the same ChatMessage JSON.
type Envelope struct {
	Binary  bool
	Payload []byte
}

// TopicSubscription is one live read stream bound to a topic. Recv blocks
// until the next envelope, the context is cancelled, or the transport fails.
// Close releases the underlying connection.
type TopicSubscription interface {
	Recv(ctx context.Context) (Envelope, error)
	Close(ctx context.Context) error
}

// TopicTransport is the streaming pub/sub collaborator. Subscriptions and
// publishes authenticate per call with the supplied credential, so a
// credential rotation never leaves a client bound to a stale token.
type TopicTransport interface {
	Subscribe(ctx context.Context, cred domain.Credential, topic string) (TopicSubscription, error)
	Publish(ctx context.Context, cred domain.Credential, topic string, payload []byte, binary bool) error
}

// BlobStore stages opaque payloads (image bytes) under a key with a TTL.
type BlobStore interface {
	Set(ctx context.Context, cred domain.Credential, key string, payload []byte, ttl time.Duration) error
	Get(ctx context.Context, cred domain.Credential, key string) ([]byte, bool, error)
}

// EventSink is the presentation layer seam. ReplaceHistory is always called
// before the first Deliver of a new subscription; Failure reports a typed
// error the UI can classify (retry prompt vs transient reconnect notice).
type EventSink interface {
	ReplaceHistory(messages []domain.ChatMessage)
	Deliver(message domain.ChatMessage)
	Failure(err error)
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming in
// the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
