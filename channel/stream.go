package channel

import (
	"translate-chat/domain"
)

// MessageStream is the normalized, ordered sequence of inbound messages for
// one open subscription. It is lazy, unbounded and non-restartable: the
// channel closes when the subscription ends, and Err reports why. Delivery
// order from the transport is preserved as application order; nothing is
// deduplicated or reordered.
type MessageStream struct {
	events chan domain.ChatMessage
	err    error
}

func newMessageStream(buffer int) *MessageStream {
	return &MessageStream{events: make(chan domain.ChatMessage, buffer)}
}

// Events yields decoded messages until the subscription ends.
func (s *MessageStream) Events() <-chan domain.ChatMessage {
	return s.events
}

// Err reports why the stream ended. It is nil after an ordered close and must
// only be read once Events is closed; the channel close is the
// synchronization point.
func (s *MessageStream) Err() error {
	return s.err
}

// end terminates the stream. Called exactly once, by the read loop.
func (s *MessageStream) end(err error) {
	s.err = err
	close(s.events)
}
