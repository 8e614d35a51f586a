package e2e

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"translate-chat/domain"
)

type BaseSuite struct {
	suite.Suite
	Config Config
	Log    *slog.Logger
}

// SetupSuite loads the environment configuration before running tests. The
// whole suite is skipped when no live backend is configured.
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.Log = slog.Default()

	if s.Config.ApiBaseURL == "" || s.Config.TopicsBaseURL == "" {
		s.T().Skip("API_BASE_URL / TOPICS_BASE_URL not set, skipping live suite")
	}
}

// Step prints a colorized header so live runs read like a scenario script.
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// collectSink records everything the coordinator reports during a scenario.
type collectSink struct {
	mu        sync.Mutex
	history   [][]domain.ChatMessage
	delivered []domain.ChatMessage
	failures  []error
	notify    chan struct{}
}

func newCollectSink() *collectSink {
	return &collectSink{notify: make(chan struct{}, 64)}
}

func (c *collectSink) ReplaceHistory(messages []domain.ChatMessage) {
	c.mu.Lock()
	c.history = append(c.history, messages)
	c.mu.Unlock()
	c.ping()
}

func (c *collectSink) Deliver(message domain.ChatMessage) {
	c.mu.Lock()
	c.delivered = append(c.delivered, message)
	c.mu.Unlock()
	c.ping()
}

func (c *collectSink) Failure(err error) {
	c.mu.Lock()
	c.failures = append(c.failures, err)
	c.mu.Unlock()
	c.ping()
}

func (c *collectSink) ping() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *collectSink) deliveredBodies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.delivered))
	for _, m := range c.delivered {
		out = append(out, m.Message)
	}
	return out
}
