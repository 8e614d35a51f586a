package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"translate-chat/auth"
	"translate-chat/blob"
	"translate-chat/channel"
	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
	"translate-chat/mocks"
	"translate-chat/moderation"
	"translate-chat/observability"
	"translate-chat/runtime"
)

type serviceFixture struct {
	svc       *ChatService
	vendor    *mocks.MockTokenVendor
	transport *mocks.MockTopicTransport
	history   *mocks.MockHistoryProvider
	catalog   *mocks.MockCatalogProvider
	remote    *mocks.MockBlobStore

	mu         sync.Mutex
	dialTokens []string
}

// dialTokensSeen returns the credential tokens each subscription dialed with,
// in order.
func (f *serviceFixture) dialTokensSeen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dialTokens...)
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := slog.Default()

	f := &serviceFixture{
		vendor:    mocks.NewMockTokenVendor(ctrl),
		transport: mocks.NewMockTopicTransport(ctrl),
		history:   mocks.NewMockHistoryProvider(ctrl),
		catalog:   mocks.NewMockCatalogProvider(ctrl),
		remote:    mocks.NewMockBlobStore(ctrl),
	}

	// Every subscription is an idle stream that ends with its context.
	f.transport.EXPECT().
		Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cred domain.Credential, _ string) (contract.TopicSubscription, error) {
			f.mu.Lock()
			f.dialTokens = append(f.dialTokens, cred.Token)
			f.mu.Unlock()

			sub := mocks.NewMockTopicSubscription(ctrl)
			sub.EXPECT().Recv(gomock.Any()).
				DoAndReturn(func(ctx context.Context) (contract.Envelope, error) {
					<-ctx.Done()
					return contract.Envelope{}, ctx.Err()
				}).AnyTimes()
			sub.EXPECT().Close(gomock.Any()).Return(nil).AnyTimes()
			return sub, nil
		}).AnyTimes()

	sink := mocks.NewMockEventSink(ctrl)
	sink.EXPECT().ReplaceHistory(gomock.Any()).AnyTimes()
	sink.EXPECT().Deliver(gomock.Any()).AnyTimes()
	sink.EXPECT().Failure(gomock.Any()).AnyTimes()

	session := domain.NewSession("ann")
	broker := auth.NewBroker(log, f.vendor, session)
	manager := channel.NewManager(log, f.transport)
	metrics := observability.NewSessionMetrics(log)
	coordinator := runtime.NewSessionCoordinator(log, broker, manager, f.history, sink, metrics, time.Hour)

	moderator, err := moderation.NewModerator(nil, '*')
	require.NoError(t, err)
	publisher := NewPublisher(log, broker, f.transport, moderator, metrics, session)
	images := blob.NewImageStore(log, f.remote, nil, 0)

	f.svc = NewChatService(log, coordinator, publisher, images, f.catalog, broker, metrics)
	t.Cleanup(coordinator.Shutdown)
	return f
}

func defaultCatalog() domain.LanguageCatalog {
	return domain.LanguageCatalog{
		{Value: "en", Label: "English"},
		{Value: "fr", Label: "Français"},
	}
}

func credentialExpiring(token string, in time.Duration) domain.Credential {
	return domain.Credential{Token: token, ExpiresAt: time.Now().Add(in)}
}

func TestChatService_Send(t *testing.T) {
	t.Run("should refresh an expiring credential once and rebind the subscription", func(t *testing.T) {
		req := require.New(t)
		f := newServiceFixture(t)

		// First token outlives the dial but not the publish margin.
		gomock.InOrder(
			f.vendor.EXPECT().IssueToken(gomock.Any(), "ann", gomock.Any()).
				Return(credentialExpiring("token-1", 5*time.Second), nil),
			f.vendor.EXPECT().IssueToken(gomock.Any(), "ann", gomock.Any()).
				Return(credentialExpiring("token-2", time.Hour), nil),
		)
		f.catalog.EXPECT().SupportedLanguages(gomock.Any()).Return(defaultCatalog(), nil)
		f.history.EXPECT().LatestMessages(gomock.Any(), "en").Return(nil, nil)

		var publishToken string
		f.transport.EXPECT().
			Publish(gomock.Any(), gomock.Any(), PublishTopic, gomock.Any(), false).
			DoAndReturn(func(_ context.Context, cred domain.Credential, _ string, _ []byte, _ bool) error {
				publishToken = cred.Token
				return nil
			})

		req.NoError(f.svc.SetLanguage(context.Background(), "en"))
		msg, err := f.svc.Send(context.Background(), "hello")
		req.NoError(err)
		req.Equal("hello", msg.Message)
		req.Equal("en", msg.SourceLanguage)

		// The publish went out under the fresh token, and the subscription
		// was redialed so the read side runs under it too.
		req.Equal("token-2", publishToken)
		req.Equal([]string{"token-1", "token-2"}, f.dialTokensSeen())
	})

	t.Run("should leave the subscription alone while the credential is fresh", func(t *testing.T) {
		req := require.New(t)
		f := newServiceFixture(t)

		f.vendor.EXPECT().IssueToken(gomock.Any(), "ann", gomock.Any()).
			Return(credentialExpiring("token-1", time.Hour), nil).Times(1)
		f.catalog.EXPECT().SupportedLanguages(gomock.Any()).Return(defaultCatalog(), nil)
		f.history.EXPECT().LatestMessages(gomock.Any(), "en").Return(nil, nil)
		f.transport.EXPECT().
			Publish(gomock.Any(), gomock.Any(), PublishTopic, gomock.Any(), false).
			Return(nil)

		req.NoError(f.svc.SetLanguage(context.Background(), "en"))
		_, err := f.svc.Send(context.Background(), "hello")
		req.NoError(err)

		req.Equal([]string{"token-1"}, f.dialTokensSeen())
	})
}

func TestChatService_SetLanguage(t *testing.T) {
	t.Run("should reject a language outside the catalog", func(t *testing.T) {
		req := require.New(t)
		f := newServiceFixture(t)

		f.catalog.EXPECT().SupportedLanguages(gomock.Any()).Return(defaultCatalog(), nil)

		err := f.svc.SetLanguage(context.Background(), "zz")
		req.ErrorIs(err, errors.ErrCatalog)
		req.Empty(f.dialTokensSeen())
	})

	t.Run("should fetch the catalog once and serve it from cache", func(t *testing.T) {
		req := require.New(t)
		f := newServiceFixture(t)

		f.catalog.EXPECT().SupportedLanguages(gomock.Any()).Return(defaultCatalog(), nil).Times(1)

		first, err := f.svc.Languages(context.Background())
		req.NoError(err)
		second, err := f.svc.Languages(context.Background())
		req.NoError(err)
		req.Equal(first, second)
		label, ok := first.Label("en")
		req.True(ok)
		req.Equal("English", label)
	})
}

func TestChatService_SendImage(t *testing.T) {
	t.Run("should stage the bytes and publish the key", func(t *testing.T) {
		req := require.New(t)
		f := newServiceFixture(t)

		png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

		f.vendor.EXPECT().IssueToken(gomock.Any(), "ann", gomock.Any()).
			Return(credentialExpiring("token-1", time.Hour), nil).Times(1)
		f.remote.EXPECT().
			Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), blob.DefaultTTL).
			Return(nil)

		var wire domain.ChatMessage
		f.transport.EXPECT().
			Publish(gomock.Any(), gomock.Any(), PublishTopic, gomock.Any(), false).
			DoAndReturn(func(_ context.Context, _ domain.Credential, _ string, payload []byte, _ bool) error {
				return json.Unmarshal(payload, &wire)
			})

		msg, err := f.svc.SendImage(context.Background(), png)
		req.NoError(err)
		req.Equal(domain.KindImage, msg.Kind)
		req.True(msg.IsImageRef())
		req.Equal(msg.Message, wire.Message)
		req.Equal(uint64(1), f.svc.Stats().ImagesStaged)
	})

	t.Run("should refuse a non-image payload before any upload", func(t *testing.T) {
		req := require.New(t)
		f := newServiceFixture(t)

		f.vendor.EXPECT().IssueToken(gomock.Any(), "ann", gomock.Any()).
			Return(credentialExpiring("token-1", time.Hour), nil).Times(1)

		_, err := f.svc.SendImage(context.Background(), []byte("plain text"))
		req.ErrorIs(err, errors.ErrNotAnImage)
	})
}
