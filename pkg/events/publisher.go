package events

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/pkg/logger"
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher interface {
	PublishAnswerGraded(ctx context.Context, sessionID string, rec *model.ResultRecord) error

	// Close closes the publisher and releases resources
	Close() error
}

// EventPublisher RabbitMQ 为空时不发布
type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
}

func NewEventPublisher(rabbitURI, exchange string) (*EventPublisher, error) {
	if rabbitURI == "" {
		logger.Log.Warn("RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{exchange: exchange}, nil
	}

	conn, err := amqp.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Log.Info("RabbitMQ publisher ready", zap.String("exchange", exchange))
	return &EventPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) Enabled() bool {
	return p.enabled
}

func (p *EventPublisher) PublishAnswerGraded(ctx context.Context, sessionID string, rec *model.ResultRecord) error {
	if !p.enabled {
		return nil
	}

	body, err := NewAnswerGradedEvent(sessionID, rec).ToJSON()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, string(AnswerGraded), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", AnswerGraded, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.enabled = false
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
