// Package service publishes domain events to RabbitMQ. Publishing is
// best-effort: the state change is already committed by the time an
// event goes out, so errors are logged and returned but never abort
// the request that triggered them.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/queue"
)

// QueuePublisher publishes events to the durable event queues. It
// dials per publish, which keeps it free of connection state to watch;
// event volume here is a handful per minute, not a firehose.
type QueuePublisher struct {
	url string
}

func NewQueuePublisher() *QueuePublisher {
	return &QueuePublisher{url: queue.BrokerURL()}
}

// PublishPenaltyIssued emits a penalty.issued event for a committed
// issuance.
func (p *QueuePublisher) PublishPenaltyIssued(ctx context.Context, rec model.PenaltyRecord, title string, targets []uint64) error {
	ev := queue.PenaltyIssuedEvent{
		RecordID:      rec.ID,
		IssuedBy:      rec.IssuedBy,
		Points:        rec.Points,
		Title:         title,
		IssuedDate:    rec.IssuedDate,
		TargetUserIDs: targets,
		IssuedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, queue.PenaltyIssuedQueue, ev)
}

// PublishPassDecided emits a pass.decided event for a decided pass.
func (p *QueuePublisher) PublishPassDecided(ctx context.Context, pass model.PassRequest, decidedBy uint64) error {
	ev := queue.PassDecidedEvent{
		PassID:    pass.ID,
		UserID:    pass.UserID,
		Type:      pass.Type,
		PassDate:  pass.PassDate,
		Status:    pass.Status,
		DecidedBy: decidedBy,
		DecidedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, queue.PassDecidedQueue, ev)
}

func (p *QueuePublisher) publish(ctx context.Context, queueName string, event interface{}) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
