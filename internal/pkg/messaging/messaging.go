package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform the
// requested operation, such as delayed delivery.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Publisher sends messages to a destination (topic or subject).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Messaging is a closable Publisher.
type Messaging interface {
	io.Closer
	Publisher
}

// OutgoingMessage is a broker-agnostic message to publish.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key partitions the message on Kafka-like brokers.
	Key []byte

	// Headers carry arbitrary binary values; duplicate keys are allowed.
	Headers []Header

	// Delay defers delivery on brokers that support it.
	Delay time.Duration
}

// Header is a message header pair.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when exposed.
	MessageID string

	// Topic is the destination the message was written to.
	Topic string

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}
