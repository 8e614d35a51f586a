// Package sink provides EventSink implementations that sit behind the
// coordinator: fanning out to several consumers and keeping a transcript.
package sink

import (
	"translate-chat/contract"
	"translate-chat/domain"
)

// Fanout forwards every sink callback to all registered sinks, in order.
type Fanout struct {
	sinks []contract.EventSink
}

func NewFanout(sinks ...contract.EventSink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) ReplaceHistory(messages []domain.ChatMessage) {
	for _, s := range f.sinks {
		s.ReplaceHistory(messages)
	}
}

func (f *Fanout) Deliver(message domain.ChatMessage) {
	for _, s := range f.sinks {
		s.Deliver(message)
	}
}

func (f *Fanout) Failure(err error) {
	for _, s := range f.sinks {
		s.Failure(err)
	}
}
