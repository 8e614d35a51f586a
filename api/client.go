// Package api wraps the REST collaborators of the chat backend: token
// issuance, language catalog and message history. These are plain
// request/response calls; all streaming lives in package transport.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"translate-chat/domain"
	"translate-chat/errors"
)

// Client talks to the translation backend REST API.
type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
}

func NewClient(log *slog.Logger, baseURL string) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type tokenResponse struct {
	Token          string `json:"token"`
	ExpiresAtEpoch int64  `json:"expiresAtEpoch"`
}

// IssueToken requests a scoped credential for the user. The expiry comes back
// as epoch seconds.
func (c *Client) IssueToken(ctx context.Context, userName string, userID uuid.UUID) (domain.Credential, error) {
	form := url.Values{}
	form.Set("username", userName)
	form.Set("id", userID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/translate/token", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body tokenResponse
	if err := c.do(req, errors.ErrAuth, &body); err != nil {
		return domain.Credential{}, err
	}
	if body.Token == "" || body.ExpiresAtEpoch <= 0 {
		return domain.Credential{}, fmt.Errorf("%w: malformed token response", errors.ErrAuth)
	}

	cred := domain.Credential{Token: body.Token, ExpiresAt: time.Unix(body.ExpiresAtEpoch, 0)}
	c.log.Debug("Token issued", "user", userName, "expires_in", time.Until(cred.ExpiresAt).Round(time.Second))
	return cred, nil
}

type languagesResponse struct {
	SupportedLanguages domain.LanguageCatalog `json:"supportedLanguages"`
}

// SupportedLanguages fetches the ordered language catalog.
func (c *Client) SupportedLanguages(ctx context.Context) (domain.LanguageCatalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/translate/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrCatalog, err)
	}

	var body languagesResponse
	if err := c.do(req, errors.ErrCatalog, &body); err != nil {
		return nil, err
	}
	if len(body.SupportedLanguages) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", errors.ErrCatalog)
	}
	return body.SupportedLanguages, nil
}

type historyResponse struct {
	Messages []json.RawMessage `json:"messages"`
}

// LatestMessages fetches the recent-history snapshot for a language. Each
// record is decoded through the same envelope parser as live events, so a
// malformed record fails the whole snapshot rather than surfacing a partial
// message.
func (c *Client) LatestMessages(ctx context.Context, language string) ([]domain.ChatMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/translate/latestMessages/"+url.PathEscape(language), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrHistory, err)
	}

	var body historyResponse
	if err := c.do(req, errors.ErrHistory, &body); err != nil {
		return nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(body.Messages))
	for _, raw := range body.Messages {
		m, err := domain.ParseMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrHistory, err)
		}
		messages = append(messages, m)
	}
	c.log.Debug("History snapshot fetched", "language", language, "messages", len(messages))
	return messages, nil
}

// do executes a request and decodes the JSON body, mapping every failure to
// the caller's sentinel.
func (c *Client) do(req *http.Request, sentinel error, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", sentinel, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return nil
}
