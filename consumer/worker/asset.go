package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tnqbao/gau-bakery-service/infra/produce"
	"github.com/tnqbao/gau-bakery-service/utils"
)

const maxRetries = 3

// AssetDeleter is the part of an asset store the cleanup consumer needs.
type AssetDeleter interface {
	Delete(ctx context.Context, filename string) error
}

type Logger interface {
	InfoWithContextf(ctx context.Context, format string, args ...interface{})
	WarningWithContextf(ctx context.Context, format string, args ...interface{})
	ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{})
}

// Acknowledger is satisfied by amqp.Delivery.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type AssetConsumer struct {
	channel *amqp.Channel
	assets  AssetDeleter
	logger  Logger
	backoff func(attempt int) time.Duration
}

func NewAssetConsumer(channel *amqp.Channel, assets AssetDeleter, logger Logger) *AssetConsumer {
	return &AssetConsumer{
		channel: channel,
		assets:  assets,
		logger:  logger,
		backoff: func(attempt int) time.Duration { return time.Duration(attempt) * 2 * time.Second },
	}
}

func (c *AssetConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.AssetCleanupQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register asset cleanup consumer: %w", err)
	}

	c.logger.InfoWithContextf(ctx, "[Asset Consumer] Started listening for cleanup jobs on queue: %s", produce.AssetCleanupQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.InfoWithContextf(ctx, "[Asset Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.WarningWithContextf(ctx, "[Asset Consumer] Channel closed")
					return
				}
				c.HandleCleanup(ctx, msg.Body, msg)
			}
		}
	}()

	return nil
}

// HandleCleanup deletes the asset named in body. Malformed messages are
// dropped, persistent failures are requeued after the last retry.
func (c *AssetConsumer) HandleCleanup(ctx context.Context, body []byte, ack Acknowledger) {
	var payload produce.AssetCleanupMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.ErrorWithContextf(ctx, err, "[Asset Consumer] Failed to unmarshal message: %v", err)
		_ = ack.Nack(false, false)
		return
	}
	if !utils.ValidAssetName(payload.Filename) {
		c.logger.WarningWithContextf(ctx, "[Asset Consumer] Message with invalid filename %q dropped", payload.Filename)
		_ = ack.Nack(false, false)
		return
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = c.assets.Delete(ctx, payload.Filename)
		if err == nil {
			c.logger.InfoWithContextf(ctx, "[Asset Consumer] Deleted %s (%s)", payload.Filename, payload.Reason)
			_ = ack.Ack(false)
			return
		}

		c.logger.ErrorWithContextf(ctx, err, "[Asset Consumer] Attempt %d/%d to delete %s failed", attempt, maxRetries, payload.Filename)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				_ = ack.Nack(false, true)
				return
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	c.logger.ErrorWithContextf(ctx, err, "[Asset Consumer] Failed after %d attempts, requeueing %s", maxRetries, payload.Filename)
	_ = ack.Nack(false, true)
}
