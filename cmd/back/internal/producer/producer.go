package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel - часть *amqp.Channel, которая нужна продюсеру
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	channel Channel
	appID   string
}

func NewProducer(channel Channel, appID string) *Producer {
	return &Producer{channel: channel, appID: appID}
}

// PublishJSON публикует сообщение в формате JSON в очередь routingKey
func (p *Producer) PublishJSON(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",         // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сохранять при перезапуске
			Timestamp:    time.Now(),
			MessageId:    id.String(),
			AppId:        p.appID,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", routingKey, err)
	}
	return nil
}
