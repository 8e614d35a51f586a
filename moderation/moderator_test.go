package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModerator_Censor(t *testing.T) {
	t.Run("should mask a forbidden word and report the match", func(t *testing.T) {
		req := require.New(t)
		m, err := NewModerator([]string{"badword"}, '*')
		req.NoError(err)

		got, found := m.Censor("this is a badword here")
		req.Equal("this is a ******* here", got)
		req.Equal([]string{"badword"}, found)
	})

	t.Run("should catch leet speak variants", func(t *testing.T) {
		req := require.New(t)
		m, err := NewModerator([]string{"badword"}, '*')
		req.NoError(err)

		got, found := m.Censor("b4dw0rd ahead")
		req.Equal("******* ahead", got)
		req.Len(found, 1)
	})

	t.Run("should catch punctuation-padded variants while preserving spacing", func(t *testing.T) {
		req := require.New(t)
		m, err := NewModerator([]string{"bad"}, '#')
		req.NoError(err)

		got, _ := m.Censor("b.a.d news")
		req.Equal("##### news", got)
	})

	t.Run("should pass clean text through untouched", func(t *testing.T) {
		req := require.New(t)
		m, err := NewModerator([]string{"badword"}, '*')
		req.NoError(err)

		got, found := m.Censor("a perfectly fine sentence")
		req.Equal("a perfectly fine sentence", got)
		req.Empty(found)
	})

	t.Run("should pass everything through with an empty word list", func(t *testing.T) {
		req := require.New(t)
		m, err := NewModerator(nil, '*')
		req.NoError(err)

		got, found := m.Censor("anything goes")
		req.Equal("anything goes", got)
		req.Empty(found)
	})
}
