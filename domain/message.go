// Package domain contains the core concepts of the translated chat client.
// This file defines the ChatMessage envelope shared by the history snapshot,
// the live stream and the publish path. Messages are immutable once built.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"translate-chat/errors"
)

// MessageKind discriminates the payload carried in Message.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
)

// ImageKeyPrefix marks an image payload staged in the blob store instead of
// being inlined. The presentation layer resolves such keys on display.
const ImageKeyPrefix = "image-"

// ChatUser identifies the author of a message.
type ChatUser struct {
	Name string `json:"username" validate:"required"`
	ID   string `json:"id" validate:"required"`
}

// ChatMessage is the wire envelope used on every surface of the system:
// history records, live stream events and outgoing publishes all carry this
// exact JSON schema.
type ChatMessage struct {
	Timestamp      int64       `json:"timestamp" validate:"required"`
	Kind           MessageKind `json:"messageType" validate:"required,oneof=text image"`
	Message        string      `json:"message" validate:"required"`
	SourceLanguage string      `json:"sourceLanguage" validate:"required"`
	User           ChatUser    `json:"user"`
}

var validate = validator.New()

// NewMessage builds an outgoing message stamped with the current time.
func NewMessage(user ChatUser, kind MessageKind, language, body string) ChatMessage {
	return ChatMessage{
		Timestamp:      time.Now().UnixMilli(),
		Kind:           kind,
		Message:        body,
		SourceLanguage: language,
		User:           user,
	}
}

// ParseMessage decodes and validates one envelope. A failure here is a
// protocol error: the payload did not follow the agreed schema.
func ParseMessage(data []byte) (ChatMessage, error) {
	var m ChatMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ChatMessage{}, fmt.Errorf("%w: %v", errors.ErrProtocol, err)
	}
	if err := validate.Struct(m); err != nil {
		return ChatMessage{}, fmt.Errorf("%w: %v", errors.ErrProtocol, err)
	}
	return m, nil
}

// Encode renders the envelope for the publish path.
func (m ChatMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// IsImageRef reports whether the payload is a blob store key rather than an
// inline base64 image.
func (m ChatMessage) IsImageRef() bool {
	return m.Kind == KindImage && strings.HasPrefix(m.Message, ImageKeyPrefix)
}

// SentAt converts the epoch-millis timestamp for display.
func (m ChatMessage) SentAt() time.Time {
	return time.UnixMilli(m.Timestamp)
}
