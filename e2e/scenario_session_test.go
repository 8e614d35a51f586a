package e2e

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"translate-chat/api"
	"translate-chat/auth"
	"translate-chat/channel"
	"translate-chat/domain"
	"translate-chat/moderation"
	"translate-chat/observability"
	"translate-chat/runtime"
	"translate-chat/services"
	"translate-chat/transport"
)

type testSessionSuite struct {
	BaseSuite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, &testSessionSuite{})
}

func (s *testSessionSuite) TestFullSessionFlow() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	restClient := api.NewClient(s.Log, s.Config.ApiBaseURL)
	topics := transport.NewClient(s.Log, s.Config.TopicsBaseURL, s.Config.Namespace)
	session := domain.NewSession(s.Config.Username)
	broker := auth.NewBroker(s.Log, restClient, session)
	manager := channel.NewManager(s.Log, topics)
	metrics := observability.NewSessionMetrics(s.Log)
	sink := newCollectSink()
	coordinator := runtime.NewSessionCoordinator(
		s.Log, broker, manager, restClient, sink, metrics, 3*time.Minute)
	defer coordinator.Shutdown()

	moderator, err := moderation.NewModerator(nil, '*')
	s.Require().NoError(err)
	publisher := services.NewPublisher(s.Log, broker, topics, moderator, metrics, session)
	chat := services.NewChatService(s.Log, coordinator, publisher, nil, restClient, broker, metrics)

	s.Run("Step 1: Catalog lists english", func() {
		s.Step("Fetching supported languages")
		catalog, err := chat.Languages(ctx)
		s.Require().NoError(err)
		s.Require().True(catalog.Contains("en"), "backend catalog should include english")
	})

	s.Run("Step 2: Subscribe and receive the history snapshot", func() {
		s.Step("Switching to english")
		s.Require().NoError(chat.SetLanguage(ctx, "en"))
		s.Require().Equal(runtime.StateSubscribed, coordinator.State())
	})

	marker := fmt.Sprintf("e2e probe %s", uuid.New().String()[:8])
	s.Run("Step 3: Publish and observe the round trip", func() {
		s.Step("Publishing a marker message")
		_, err := chat.Send(ctx, marker)
		s.Require().NoError(err)

		deadline := time.After(60 * time.Second)
		for {
			for _, body := range sink.deliveredBodies() {
				if body == marker {
					return
				}
			}
			select {
			case <-sink.notify:
			case <-deadline:
				s.FailNow("marker message never came back on the subscription")
			case <-ctx.Done():
				s.FailNow("context expired waiting for the marker message")
			}
		}
	})

	s.Run("Step 4: Forced reconnection keeps the session alive", func() {
		s.Step("Reopening under a fresh credential")
		s.Require().NoError(coordinator.Reopen(ctx, true))
		s.Require().Equal(runtime.StateSubscribed, coordinator.State())
		s.Require().GreaterOrEqual(metrics.GetLatest().Reconnects, uint64(1))
	})
}
