package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLocalVendor_IssueToken(t *testing.T) {
	t.Run("should mint a credential validatable with the same secret", func(t *testing.T) {
		req := require.New(t)
		vendor := NewLocalVendor("local_dev_secret_for_translate_chat", time.Hour)
		id := uuid.New()

		cred, err := vendor.IssueToken(context.Background(), "bob", id)
		req.NoError(err)
		req.NotEmpty(cred.Token)
		req.WithinDuration(time.Now().Add(time.Hour), cred.ExpiresAt, 5*time.Second)

		claims, err := vendor.Validate(cred.Token)
		req.NoError(err)
		req.Equal("bob", claims.UserName)
		req.Equal(id.String(), claims.UserID)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		vendor := NewLocalVendor("secret-a", time.Hour)
		other := NewLocalVendor("secret-b", time.Hour)

		cred, err := vendor.IssueToken(context.Background(), "bob", uuid.New())
		req.NoError(err)

		_, err = other.Validate(cred.Token)
		req.Error(err)
	})
}
