// Package blob stages image payloads for chat messages. Images travel as
// base64 under a reserved key prefix: the message body carries only the key,
// and viewers resolve it against the store. A local badger cache with the
// same TTL as the remote entry keeps recently seen images off the network.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"translate-chat/contract"
	"translate-chat/domain"
	"translate-chat/errors"
)

// DefaultTTL mirrors the retention of the hosted cache.
const DefaultTTL = 24 * time.Hour

type ImageStore struct {
	log    *slog.Logger
	remote contract.BlobStore
	local  *badger.DB
	ttl    time.Duration
}

func NewImageStore(log *slog.Logger, remote contract.BlobStore, local *badger.DB, ttl time.Duration) *ImageStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ImageStore{log: log, remote: remote, local: local, ttl: ttl}
}

// Stage uploads raw image bytes under a fresh key and returns the key to put
// in the message body. Non-image payloads are refused before any upload.
func (s *ImageStore) Stage(ctx context.Context, cred domain.Credential, data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", errors.ErrNotAnImage, mt.String())
	}

	key := domain.ImageKeyPrefix + uuid.NewString()
	payload := []byte(base64.StdEncoding.EncodeToString(data))

	if err := s.remote.Set(ctx, cred, key, payload, s.ttl); err != nil {
		return "", err
	}
	if err := s.cachePut(key, payload); err != nil {
		// The remote copy is authoritative; a cache write failure only costs
		// a later round trip.
		s.log.Warn("Image cache write failed", "key", key, "error", err)
	}

	s.log.Debug("Image staged", "key", key, "mime", mt.String(), "bytes", len(data))
	return key, nil
}

// Resolve returns the raw image bytes for an image message, whether the body
// is inline base64 or a staged key.
func (s *ImageStore) Resolve(ctx context.Context, cred domain.Credential, msg domain.ChatMessage) ([]byte, error) {
	if msg.Kind != domain.KindImage {
		return nil, fmt.Errorf("%w: message kind %q", errors.ErrNotAnImage, msg.Kind)
	}

	if !msg.IsImageRef() {
		return decode(msg.Message)
	}

	key := msg.Message
	if payload, ok := s.cacheGet(key); ok {
		return decode(string(payload))
	}

	payload, ok, err := s.remote.Get(ctx, cred, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("image %q not found or expired", key)
	}
	if err := s.cachePut(key, payload); err != nil {
		s.log.Warn("Image cache write failed", "key", key, "error", err)
	}
	return decode(string(payload))
}

func decode(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("image payload is not valid base64: %w", err)
	}
	return data, nil
}

func (s *ImageStore) cachePut(key string, payload []byte) error {
	if s.local == nil {
		return nil
	}
	return s.local.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), payload).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

func (s *ImageStore) cacheGet(key string) ([]byte, bool) {
	if s.local == nil {
		return nil, false
	}
	var payload []byte
	err := s.local.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return payload, true
}
