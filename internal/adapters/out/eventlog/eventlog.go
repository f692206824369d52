// Package eventlog records lot events in the service log and fans events
// out to several publishers.
package eventlog

import (
	"context"
	"errors"

	"lots/internal/core/domain/model/lot"
	"lots/internal/core/ports"

	"go.uber.org/zap"
)

// Logger writes one structured log entry per event.
type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.With(zap.String("component", "lot_events"))}
}

func (l *Logger) Publish(_ context.Context, events ...lot.Event) error {
	for _, event := range events {
		fields := []zap.Field{
			zap.String("message_id", event.MessageID),
			zap.String("lot_id", event.LotID.String()),
			zap.String("from", event.From),
			zap.String("to", event.To),
			zap.String("role", event.Role.String()),
			zap.Time("at", event.At),
		}
		if event.AuctionID != nil {
			fields = append(fields, zap.String("auction_id", event.AuctionID.String()))
		}
		if event.ContractID != nil {
			fields = append(fields, zap.String("contract_id", event.ContractID.String()))
		}
		if event.RelatedProcessID != nil {
			fields = append(fields, zap.String("related_process_id", event.RelatedProcessID.String()))
		}
		l.logger.Info(event.MessageID, fields...)
	}
	return nil
}

// FanOut delivers every batch to each publisher in order. A failing
// publisher does not stop the others.
type FanOut struct {
	publishers []ports.EventPublisher
}

func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	return &FanOut{publishers: publishers}
}

func (f *FanOut) Publish(ctx context.Context, events ...lot.Event) error {
	if len(events) == 0 {
		return nil
	}
	var err error
	for _, p := range f.publishers {
		err = errors.Join(err, p.Publish(ctx, events...))
	}
	return err
}
