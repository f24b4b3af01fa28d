package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
)

// SaleRecordedEventType is set as the event-type header of every message.
const SaleRecordedEventType = "sale.recorded"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes sale events to a Kafka topic keyed by product id, so
// events for one product stay ordered within a partition.
type Publisher struct {
	w messageWriter
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			MaxAttempts:            5,
			WriteTimeout:           5 * time.Second,
			ReadTimeout:            5 * time.Second,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func newPublisherWithWriter(w messageWriter) *Publisher {
	return &Publisher{w: w}
}

func (p *Publisher) PublishSaleRecorded(ctx context.Context, event types.SaleRecordedEvent) error {
	if p == nil || p.w == nil {
		return errors.New("kafka publisher not configured")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID.String()),
		Value: body,
		Time:  event.RecordedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(SaleRecordedEventType)},
			{Key: "sale-id", Value: []byte(event.SaleID.String())},
		},
	})
}

func (p *Publisher) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}
