package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	AssetExchange          = "asset.exchange"
	AssetCleanupQueue      = "asset.cleanup"
	AssetCleanupRoutingKey = "asset.cleanup"
)

// AssetCleanupMessage asks the worker to delete an asset that could not be
// removed inline.
type AssetCleanupMessage struct {
	Filename  string `json:"filename"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher is the subset of *amqp.Channel used to publish.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AssetService struct {
	channel Publisher
}

// InitAssetService declares the cleanup exchange and queue and binds them.
func InitAssetService(channel *amqp.Channel) *AssetService {
	err := channel.ExchangeDeclare(
		AssetExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Asset exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		AssetCleanupQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Asset Cleanup queue: " + err.Error())
	}

	err = channel.QueueBind(
		AssetCleanupQueue,
		AssetCleanupRoutingKey,
		AssetExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Asset Cleanup queue: " + err.Error())
	}

	return NewAssetService(channel)
}

func NewAssetService(channel Publisher) *AssetService {
	return &AssetService{channel: channel}
}

func (s *AssetService) PublishAssetCleanup(ctx context.Context, filename, reason string) error {
	msg := AssetCleanupMessage{
		Filename:  filename,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		AssetExchange,
		AssetCleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
