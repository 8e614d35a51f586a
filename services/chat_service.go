package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"translate-chat/auth"
	"translate-chat/blob"
	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
	"translate-chat/observability"
	"translate-chat/runtime"
)

type IChatService interface {
	SetLanguage(ctx context.Context, language string) error
	Send(ctx context.Context, body string) (domain.ChatMessage, error)
	SendImage(ctx context.Context, data []byte) (domain.ChatMessage, error)
	ResolveImage(ctx context.Context, msg domain.ChatMessage) ([]byte, error)
	Languages(ctx context.Context) (domain.LanguageCatalog, error)
	Stats() observability.SessionStats
}

// ChatService is the application facade: it validates inputs, delegates to
// the coordinator and the publisher, and reconnects the read side whenever a
// write forced a credential refresh.
type ChatService struct {
	log         *slog.Logger
	coordinator *runtime.SessionCoordinator
	publisher   *Publisher
	images      *blob.ImageStore
	catalog     contract.CatalogProvider
	broker      *auth.Broker
	metrics     *observability.SessionMetrics

	mu        sync.Mutex
	languages domain.LanguageCatalog
}

func NewChatService(
	log *slog.Logger,
	coordinator *runtime.SessionCoordinator,
	publisher *Publisher,
	images *blob.ImageStore,
	catalog contract.CatalogProvider,
	broker *auth.Broker,
	metrics *observability.SessionMetrics,
) *ChatService {
	return &ChatService{
		log:         log,
		coordinator: coordinator,
		publisher:   publisher,
		images:      images,
		catalog:     catalog,
		broker:      broker,
		metrics:     metrics,
	}
}

// SetLanguage validates the language against the catalog and switches the
// session over to it.
func (s *ChatService) SetLanguage(ctx context.Context, language string) error {
	catalog, err := s.Languages(ctx)
	if err != nil {
		return err
	}
	if !catalog.Contains(language) {
		return fmt.Errorf("%w: unsupported language %q", errors.ErrCatalog, language)
	}
	return s.coordinator.SetLanguage(ctx, language)
}

// Send publishes a text message in the session's current language. When the
// publish refreshed the credential, the live subscription is reopened so the
// read side never keeps running on a retired token.
func (s *ChatService) Send(ctx context.Context, body string) (domain.ChatMessage, error) {
	msg, refreshed, err := s.publisher.Publish(ctx, domain.KindText, s.coordinator.Language(), body)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	s.reopenAfterRefresh(ctx, refreshed)
	return msg, nil
}

// SendImage stages the image bytes and publishes the resulting key.
func (s *ChatService) SendImage(ctx context.Context, data []byte) (domain.ChatMessage, error) {
	refreshed, err := s.broker.Ensure(ctx, auth.DefaultMargin)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	key, err := s.images.Stage(ctx, s.broker.Credential(), data)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	s.metrics.IncrImagesStaged()

	msg, pubRefreshed, err := s.publisher.Publish(ctx, domain.KindImage, s.coordinator.Language(), key)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	s.reopenAfterRefresh(ctx, refreshed || pubRefreshed)
	return msg, nil
}

// ResolveImage fetches the raw bytes behind an image message.
func (s *ChatService) ResolveImage(ctx context.Context, msg domain.ChatMessage) ([]byte, error) {
	if _, err := s.broker.Ensure(ctx, auth.DefaultMargin); err != nil {
		return nil, err
	}
	return s.images.Resolve(ctx, s.broker.Credential(), msg)
}

// Languages returns the supported language catalog, fetched once and cached
// for the lifetime of the service.
func (s *ChatService) Languages(ctx context.Context) (domain.LanguageCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.languages) > 0 {
		return s.languages, nil
	}
	catalog, err := s.catalog.SupportedLanguages(ctx)
	if err != nil {
		return nil, err
	}
	s.languages = catalog
	return catalog, nil
}

func (s *ChatService) Stats() observability.SessionStats {
	return s.metrics.GetLatest()
}

// reopenAfterRefresh reconnects the subscription after a write-path token
// refresh. The message already went out; a reconnect failure is reported
// through the coordinator's failure path rather than failing the send.
func (s *ChatService) reopenAfterRefresh(ctx context.Context, refreshed bool) {
	if !refreshed {
		return
	}
	if err := s.coordinator.Reopen(ctx, false); err != nil {
		s.log.Warn("Reconnect after credential refresh failed", "error", err)
	}
}
