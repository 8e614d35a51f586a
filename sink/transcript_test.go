package sink

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"translate-chat/contract"
	"translate-chat/domain"
)

func TestTranscript(t *testing.T) {
	t.Run("should append one JSON line per delivered message", func(t *testing.T) {
		req := require.New(t)
		path := filepath.Join(t.TempDir(), "transcript.jsonl")

		tr, err := NewTranscript(slog.Default(), path)
		req.NoError(err)

		user := domain.ChatUser{Name: "ann", ID: "u1"}
		tr.Deliver(domain.NewMessage(user, domain.KindText, "en", "first"))
		tr.Deliver(domain.NewMessage(user, domain.KindText, "en", "second"))
		req.NoError(tr.Close())

		file, err := os.Open(path)
		req.NoError(err)
		defer file.Close()

		var bodies []string
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			var m domain.ChatMessage
			req.NoError(json.Unmarshal(scanner.Bytes(), &m))
			bodies = append(bodies, m.Message)
		}
		req.Equal([]string{"first", "second"}, bodies)
	})

	t.Run("should ignore history snapshots", func(t *testing.T) {
		req := require.New(t)
		path := filepath.Join(t.TempDir(), "transcript.jsonl")

		tr, err := NewTranscript(slog.Default(), path)
		req.NoError(err)

		user := domain.ChatUser{Name: "ann", ID: "u1"}
		tr.ReplaceHistory([]domain.ChatMessage{
			domain.NewMessage(user, domain.KindText, "en", "old"),
		})
		req.NoError(tr.Close())

		data, err := os.ReadFile(path)
		req.NoError(err)
		req.Empty(data)
	})
}

type countingSink struct {
	history   int
	delivered int
	failures  int
}

func (c *countingSink) ReplaceHistory([]domain.ChatMessage) { c.history++ }
func (c *countingSink) Deliver(domain.ChatMessage)          { c.delivered++ }
func (c *countingSink) Failure(error)                       { c.failures++ }

func TestFanout(t *testing.T) {
	req := require.New(t)
	first := &countingSink{}
	second := &countingSink{}

	var fan contract.EventSink = NewFanout(first, second)
	user := domain.ChatUser{Name: "ann", ID: "u1"}

	fan.ReplaceHistory(nil)
	fan.Deliver(domain.NewMessage(user, domain.KindText, "en", "x"))
	fan.Deliver(domain.NewMessage(user, domain.KindText, "en", "y"))
	fan.Failure(os.ErrClosed)

	for _, s := range []*countingSink{first, second} {
		req.Equal(1, s.history)
		req.Equal(2, s.delivered)
		req.Equal(1, s.failures)
	}
}
