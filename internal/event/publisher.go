package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishMissionEvent(ctx context.Context, event MissionEvent) error
}

// MissionEventPublisher publishes mission lifecycle events to RabbitMQ.
type MissionEventPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewMissionEventPublisher(conn *RabbitMQConnection) *MissionEventPublisher {
	return &MissionEventPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

func (p *MissionEventPublisher) PublishMissionEvent(ctx context.Context, event MissionEvent) error {
	_, err := p.conn.Channel.QueueDeclare(
		MissionQueue, // queue name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal mission event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",           // exchange
		MissionQueue, // routing key (queue name)
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish mission event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	log.Printf("Mission event published: %s mission=%s", event.EventType, event.MissionID)
	return nil
}

// GetMetrics returns publisher counters.
func (p *MissionEventPublisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"last_publish_time":  p.lastPublishTime,
		"queue":              MissionQueue,
	}
}

// NopPublisher drops events. Used when the broker is unreachable so the
// API keeps serving.
type NopPublisher struct{}

func (NopPublisher) PublishMissionEvent(ctx context.Context, event MissionEvent) error {
	return nil
}
