package sink

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"translate-chat/domain"
)

// Transcript appends every delivered message to a JSONL file, one envelope
// per line. History snapshots and failures are not recorded: the transcript
// is a log of what the user actually saw arrive live.
type Transcript struct {
	mu   sync.Mutex
	log  *slog.Logger
	file *os.File
}

func NewTranscript(log *slog.Logger, path string) (*Transcript, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Transcript{log: log, file: file}, nil
}

func (t *Transcript) ReplaceHistory([]domain.ChatMessage) {}

func (t *Transcript) Deliver(message domain.ChatMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		t.log.Error("Transcript encode failed", "error", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.file.Write(append(data, '\n')); err != nil {
		t.log.Error("Transcript write failed", "error", err)
	}
}

func (t *Transcript) Failure(error) {}

func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}
