// Package redis publishes lot events to a Redis pub/sub channel as JSON.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lots/internal/core/domain/model/lot"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "lots.events"

// EventMessage is the wire form of a lot event.
type EventMessage struct {
	MessageID        string    `json:"messageID"`
	LotID            string    `json:"lotID"`
	AuctionID        string    `json:"auctionID,omitempty"`
	ContractID       string    `json:"contractID,omitempty"`
	RelatedProcessID string    `json:"relatedProcessID,omitempty"`
	From             string    `json:"from"`
	To               string    `json:"to"`
	Role             string    `json:"role"`
	At               time.Time `json:"at"`
}

func NewEventMessage(event lot.Event) EventMessage {
	msg := EventMessage{
		MessageID: event.MessageID,
		LotID:     event.LotID.String(),
		From:      event.From,
		To:        event.To,
		Role:      event.Role.String(),
		At:        event.At.UTC(),
	}
	if event.AuctionID != nil {
		msg.AuctionID = event.AuctionID.String()
	}
	if event.ContractID != nil {
		msg.ContractID = event.ContractID.String()
	}
	if event.RelatedProcessID != nil {
		msg.RelatedProcessID = event.RelatedProcessID.String()
	}
	return msg
}

// EventPublisher implements ports.EventPublisher on top of PUBLISH.
type EventPublisher struct {
	client  redis.Cmdable
	channel string
}

func NewEventPublisher(client redis.Cmdable, channel string) (*EventPublisher, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return &EventPublisher{client: client, channel: channel}, nil
}

// Publish sends each event as its own message, in order. It keeps going
// after a failed message and reports every failure.
func (p *EventPublisher) Publish(ctx context.Context, events ...lot.Event) error {
	var err error
	for _, event := range events {
		payload, mErr := json.Marshal(NewEventMessage(event))
		if mErr != nil {
			err = errors.Join(err, mErr)
			continue
		}
		if pErr := p.client.Publish(ctx, p.channel, string(payload)).Err(); pErr != nil {
			err = errors.Join(err, fmt.Errorf("publish %s for lot %s: %w", event.MessageID, event.LotID, pErr))
		}
	}
	return err
}

// Ping checks connectivity within timeout.
func Ping(ctx context.Context, client redis.Cmdable, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}
