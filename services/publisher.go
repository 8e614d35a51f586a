package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"translate-chat/auth"
	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
	"translate-chat/moderation"
	"translate-chat/observability"
)

// PublishTopic is the single write-side topic. The backend fans messages out
// to the language-partitioned read topics after translation.
const PublishTopic = "chat-publish"

type IPublisher interface {
	Publish(ctx context.Context, kind domain.MessageKind, language, body string) (domain.ChatMessage, bool, error)
}

// Publisher sends outgoing messages under a guaranteed-fresh credential. It
// never touches the read-side subscription: when a publish forced a token
// refresh it reports that, and the caller decides whether to reconnect.
type Publisher struct {
	log       *slog.Logger
	broker    *auth.Broker
	transport contract.TopicTransport
	moderator moderation.Moderator
	metrics   *observability.SessionMetrics
	session   domain.Session
}

func NewPublisher(
	log *slog.Logger,
	broker *auth.Broker,
	transport contract.TopicTransport,
	moderator moderation.Moderator,
	metrics *observability.SessionMetrics,
	session domain.Session,
) *Publisher {
	return &Publisher{
		log:       log,
		broker:    broker,
		transport: transport,
		moderator: moderator,
		metrics:   metrics,
		session:   session,
	}
}

// Publish stamps, moderates and sends one message. The returned bool reports
// whether the credential was refreshed on the way: a live subscription opened
// under the previous token should then be reopened by the caller.
func (p *Publisher) Publish(ctx context.Context, kind domain.MessageKind, language, body string) (domain.ChatMessage, bool, error) {
	if body == "" {
		return domain.ChatMessage{}, false, fmt.Errorf("%w: empty message body", errors.ErrPublish)
	}

	if kind == domain.KindText {
		censored, found := p.moderator.Censor(body)
		if len(found) > 0 {
			p.log.Info("Outgoing message moderated", "matches", len(found))
		}
		body = censored
	}

	if language == "" {
		language = detectLanguage(body)
	}

	refreshed, err := p.broker.Ensure(ctx, auth.DefaultMargin)
	if err != nil {
		return domain.ChatMessage{}, false, err
	}
	if refreshed {
		p.metrics.IncrTokenRefreshes()
	}

	msg := domain.NewMessage(p.session.User(), kind, language, body)
	data, err := msg.Encode()
	if err != nil {
		return domain.ChatMessage{}, refreshed, fmt.Errorf("%w: %v", errors.ErrPublish, err)
	}

	if err := p.transport.Publish(ctx, p.broker.Credential(), PublishTopic, data, false); err != nil {
		return domain.ChatMessage{}, refreshed, err
	}

	p.metrics.IncrPublished()
	p.log.Debug("Message published", "kind", kind, "language", language)
	return msg, refreshed, nil
}

// detectLanguage guesses the source language of a body when the caller did
// not provide one. An unreliable guess falls back to English, which matches
// what the backend assumes for untagged messages.
func detectLanguage(body string) string {
	info := whatlanggo.Detect(body)
	if code := info.Lang.Iso6391(); code != "" && info.IsReliable() {
		return code
	}
	return "en"
}
