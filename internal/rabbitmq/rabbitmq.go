package rabbitmq

import (
	"fmt"
	"net/url"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQClient обертка для работы с RabbitMQ
type RabbitMQClient struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// URL собирает amqp-адрес; vHost экранируется ("/" -> "%2F")
func URL(host, port, username, password, vHost string) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(username, password),
		Host:   host + ":" + port,
	}
	return u.String() + "/" + url.PathEscape(vHost)
}

// NewRabbitMQClient подключается и объявляет durable-очереди queues
func NewRabbitMQClient(amqpURL string, queues ...string) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	for _, q := range queues {
		_, err = ch.QueueDeclare(
			q,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	return &RabbitMQClient{Conn: conn, Ch: ch}, nil
}

// Close закрывает соединение с RabbitMQ
func (c *RabbitMQClient) Close() {
	if c.Ch != nil {
		c.Ch.Close()
	}
	if c.Conn != nil {
		c.Conn.Close()
	}
}
