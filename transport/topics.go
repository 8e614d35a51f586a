// Package transport implements the streaming pub/sub collaborator: topic
// subscriptions over WebSocket and unary publish/cache calls over REST. Every
// call authenticates with the credential it is given; nothing here caches
// tokens, so a rotation only requires reopening the subscription.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coder/websocket"

	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
)

// Inline base64 images ride the same frames as text messages.
const maxFrameBytes = 16 << 20

// Client speaks to one topics service instance under a fixed namespace.
type Client struct {
	log       *slog.Logger
	baseURL   string
	namespace string
	http      *http.Client
}

func NewClient(log *slog.Logger, baseURL, namespace string) *Client {
	return &Client{
		log:       log,
		baseURL:   strings.TrimRight(baseURL, "/"),
		namespace: namespace,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) topicURL(topic string) string {
	return fmt.Sprintf("%s/topics/%s/%s", c.baseURL, url.PathEscape(c.namespace), url.PathEscape(topic))
}

func (c *Client) cacheURL(key string) string {
	return fmt.Sprintf("%s/cache/%s?key=%s", c.baseURL, url.PathEscape(c.namespace), url.QueryEscape(key))
}

// Subscribe opens a WebSocket read stream on one topic. The returned
// subscription delivers raw envelopes in transport order until Close or a
// transport failure.
func (c *Client) Subscribe(ctx context.Context, cred domain.Credential, topic string) (contract.TopicSubscription, error) {
	if cred.Token == "" {
		return nil, fmt.Errorf("%w: %v", errors.ErrChannel, errors.ErrNoCredential)
	}

	header := http.Header{}
	header.Set("Authorization", cred.Token)

	conn, resp, err := websocket.Dial(ctx, c.topicURL(topic), &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: topic %q rejected with status %d", errors.ErrChannel, topic, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: topic %q: %v", errors.ErrChannel, topic, err)
	}
	conn.SetReadLimit(maxFrameBytes)

	c.log.Debug("Subscribed to topic", "topic", topic)
	return &subscription{conn: conn}, nil
}

// Publish sends one envelope on a topic. Text and binary payloads differ only
// in content type; the body schema is identical.
func (c *Client) Publish(ctx context.Context, cred domain.Credential, topic string, payload []byte, binary bool) error {
	if cred.Token == "" {
		return fmt.Errorf("%w: %v", errors.ErrPublish, errors.ErrNoCredential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.topicURL(topic), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPublish, err)
	}
	req.Header.Set("Authorization", cred.Token)
	if binary {
		req.Header.Set("Content-Type", "application/octet-stream")
	} else {
		req.Header.Set("Content-Type", "text/plain")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPublish, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: topic %q rejected with status %d", errors.ErrPublish, topic, resp.StatusCode)
	}
	return nil
}

// Set stages a payload in the namespace KV store with a TTL.
func (c *Client) Set(ctx context.Context, cred domain.Credential, key string, payload []byte, ttl time.Duration) error {
	u := c.cacheURL(key) + "&ttl_seconds=" + strconv.Itoa(int(ttl.Seconds()))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("blob set %q: %w", key, err)
	}
	req.Header.Set("Authorization", cred.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("blob set %q: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blob set %q: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

// Get fetches a staged payload. A missing or expired key is a miss, not an
// error.
func (c *Client) Get(ctx context.Context, cred domain.Credential, key string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cacheURL(key), nil)
	if err != nil {
		return nil, false, fmt.Errorf("blob get %q: %w", key, err)
	}
	req.Header.Set("Authorization", cred.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("blob get %q: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return nil, false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, false, fmt.Errorf("blob get %q: unexpected status %d", key, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("blob get %q: %w", key, err)
	}
	return data, true, nil
}

// subscription adapts one websocket connection to the TopicSubscription
// contract.
type subscription struct {
	conn *websocket.Conn
}

// Recv blocks for the next frame. Context cancellation is returned untouched
// so the owner can tell an ordered shutdown from a transport failure.
func (s *subscription) Recv(ctx context.Context) (contract.Envelope, error) {
	typ, data, err := s.conn.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return contract.Envelope{}, ctx.Err()
		}
		return contract.Envelope{}, fmt.Errorf("%w: %v", errors.ErrStream, err)
	}
	return contract.Envelope{Binary: typ == websocket.MessageBinary, Payload: data}, nil
}

// Close releases the connection. Any blocked Recv unblocks with an error.
func (s *subscription) Close(_ context.Context) error {
	return s.conn.Close(websocket.StatusNormalClosure, "subscription closed")
}
