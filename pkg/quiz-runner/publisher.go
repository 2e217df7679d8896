package quiz_runner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ably/ably-go/ably"
)

// ResultEventName is the message name used when announcing a finished run.
const ResultEventName = "quiz-result"

// RealtimeChannel for easier mocking tests.
type RealtimeChannel interface {
	Publish(ctx context.Context, name string, data interface{}) error
}

// ResultPublisher announces finished runs on a realtime channel.
type ResultPublisher struct {
	channel RealtimeChannel
}

// NewResultPublisher publishes on an already attached channel.
func NewResultPublisher(channel RealtimeChannel) *ResultPublisher {
	return &ResultPublisher{channel: channel}
}

// NewAblyResultPublisher connects to Ably with the given key and publishes on channelName.
// The returned close function releases the realtime connection.
func NewAblyResultPublisher(ablyKey, channelName string) (*ResultPublisher, func(), error) {
	realtime, err := ably.NewRealtime(ably.WithKey(ablyKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Ably realtime client: %w", err)
	}
	channel := realtime.Channels.Get(channelName)
	return NewResultPublisher(channel), realtime.Close, nil
}

// Publish sends the result as JSON under ResultEventName.
func (p *ResultPublisher) Publish(ctx context.Context, result Result) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshalling result: %w", err)
	}
	if err := p.channel.Publish(ctx, ResultEventName, jsonData); err != nil {
		return fmt.Errorf("error publishing result: %w", err)
	}
	return nil
}
