package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"translate-chat/errors"
)

func TestParseMessage(t *testing.T) {
	t.Run("should decode a valid envelope", func(t *testing.T) {
		req := require.New(t)
		payload := []byte(`{
			"timestamp": 1726000000000,
			"messageType": "text",
			"message": "bonjour",
			"sourceLanguage": "fr",
			"user": {"username": "ann", "id": "u1"}
		}`)

		m, err := ParseMessage(payload)
		req.NoError(err)
		req.Equal(KindText, m.Kind)
		req.Equal("bonjour", m.Message)
		req.Equal("fr", m.SourceLanguage)
		req.Equal("ann", m.User.Name)
		req.Equal(time.UnixMilli(1726000000000), m.SentAt())
	})

	t.Run("should reject malformed json as a protocol error", func(t *testing.T) {
		req := require.New(t)
		_, err := ParseMessage([]byte(`{"messageType": 42`))
		req.ErrorIs(err, errors.ErrProtocol)
	})

	t.Run("should reject an unknown message type", func(t *testing.T) {
		req := require.New(t)
		payload := []byte(`{
			"timestamp": 1,
			"messageType": "audio",
			"message": "x",
			"sourceLanguage": "en",
			"user": {"username": "a", "id": "1"}
		}`)
		_, err := ParseMessage(payload)
		req.ErrorIs(err, errors.ErrProtocol)
	})

	t.Run("should reject a message without a body", func(t *testing.T) {
		req := require.New(t)
		payload := []byte(`{
			"timestamp": 1,
			"messageType": "text",
			"message": "",
			"sourceLanguage": "en",
			"user": {"username": "a", "id": "1"}
		}`)
		_, err := ParseMessage(payload)
		req.ErrorIs(err, errors.ErrProtocol)
	})
}

func TestChatMessage_RoundTrip(t *testing.T) {
	req := require.New(t)
	session := NewSession("ann")

	out := NewMessage(session.User(), KindText, "en", "hello")
	data, err := out.Encode()
	req.NoError(err)

	back, err := ParseMessage(data)
	req.NoError(err)
	req.Equal(out, back)
}

func TestChatMessage_IsImageRef(t *testing.T) {
	req := require.New(t)
	user := ChatUser{Name: "ann", ID: "u1"}

	ref := NewMessage(user, KindImage, "en", ImageKeyPrefix+"abc")
	req.True(ref.IsImageRef())

	inline := NewMessage(user, KindImage, "en", "aGVsbG8=")
	req.False(inline.IsImageRef())

	text := NewMessage(user, KindText, "en", ImageKeyPrefix+"abc")
	req.False(text.IsImageRef())
}

func TestCredential_Fresh(t *testing.T) {
	req := require.New(t)
	now := time.Now()

	req.False(Credential{}.Fresh(now, 10*time.Second))
	req.False(Credential{Token: "t", ExpiresAt: now.Add(10 * time.Second)}.Fresh(now, 10*time.Second))
	req.True(Credential{Token: "t", ExpiresAt: now.Add(11 * time.Second)}.Fresh(now, 10*time.Second))
}

func TestLanguageCatalog(t *testing.T) {
	req := require.New(t)
	catalog := LanguageCatalog{
		{Value: "en", Label: "English"},
		{Value: "fr", Label: "Français"},
	}

	req.True(catalog.Contains("fr"))
	req.False(catalog.Contains("zz"))
	req.Equal([]string{"en", "fr"}, catalog.Codes())

	label, ok := catalog.Label("fr")
	req.True(ok)
	req.Equal("Français", label)

	_, ok = catalog.Label("zz")
	req.False(ok)
}
