package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Watermill metadata keys carrying the Message envelope.
const (
	metaKeyViewID = "view_id"
	metaKeyTopic  = "topic"
)

// DefaultBuffer is the per-subscriber output buffer of the in-process bus.
const DefaultBuffer = 64

// WatermillBridge is the portal's in-process bus: a watermill GoChannel behind
// the Publisher and Subscriber interfaces.
type WatermillBridge struct {
	channel *gochannel.GoChannel
	logger  *slog.Logger
}

// BridgeOption configures a WatermillBridge.
type BridgeOption func(*bridgeOptions)

type bridgeOptions struct {
	buffer int64
	logger *slog.Logger
}

// WithBuffer sets the per-subscriber output buffer.
func WithBuffer(n int64) BridgeOption {
	return func(o *bridgeOptions) { o.buffer = n }
}

// WithLogger routes the bus's own logging to logger.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(o *bridgeOptions) { o.logger = logger }
}

// NewWatermillBridge creates an in-process bus. Messages are not persisted;
// subscribers only see what is published after they subscribe.
func NewWatermillBridge(opts ...BridgeOption) *WatermillBridge {
	o := bridgeOptions{buffer: DefaultBuffer, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("component", "pubsub")
	return &WatermillBridge{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: o.buffer},
			slogAdapter{logger: logger},
		),
		logger: logger,
	}
}

func toWatermill(ctx context.Context, msg Message) *message.Message {
	out := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		out.Metadata.Set(k, v)
	}
	// Envelope keys win over caller metadata of the same name.
	out.Metadata.Set(metaKeyViewID, msg.ViewID)
	out.Metadata.Set(metaKeyTopic, msg.Topic)
	out.SetContext(ctx)
	return out
}

func fromWatermill(in *message.Message) Message {
	var metadata map[string]string
	for k, v := range in.Metadata {
		if k == metaKeyViewID || k == metaKeyTopic {
			continue
		}
		if metadata == nil {
			metadata = make(map[string]string, len(in.Metadata))
		}
		metadata[k] = v
	}
	return Message{
		Topic:    in.Metadata.Get(metaKeyTopic),
		ViewID:   in.Metadata.Get(metaKeyViewID),
		Payload:  in.Payload,
		Metadata: metadata,
	}
}

// Publish implements Publisher.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	return wb.channel.Publish(msg.Topic, toWatermill(ctx, msg))
}

// Subscribe implements Subscriber. Handler errors are logged and the message
// is acknowledged anyway; GoChannel redelivers a nacked message immediately.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for in := range messages {
			if err := handler(in.Context(), fromWatermill(in)); err != nil {
				wb.logger.Error("Failed to handle message", "topic", topic, "msg_id", in.UUID, "error", err)
			}
			in.Ack()
		}
		wb.logger.Debug("Subscription ended", "topic", topic)
	}()
	return nil
}

// Close shuts the bus down and ends every subscription.
func (wb *WatermillBridge) Close() error {
	return wb.channel.Close()
}

// slogAdapter implements watermill.LoggerAdapter on top of slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(attrs(fields), "error", err)...)
}

func (a slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, attrs(fields)...)
}

// Debug and Trace both map to slog's debug level; GoChannel is chatty at both.
func (a slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return slogAdapter{logger: a.logger.With(attrs(fields)...)}
}

func attrs(fields watermill.LogFields) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
