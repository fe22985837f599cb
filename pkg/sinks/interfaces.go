package sinks

import "context"

// Sink delivers collected repository events to a downstream destination
// (HTTP webhook, SQS, SNS, Pub/Sub).
type Sink interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
