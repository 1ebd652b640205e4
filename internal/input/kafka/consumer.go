package kafka

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"shoprelay/internal/models"
)

// Processor matches the relay dispatcher entry point.
type Processor interface {
	Process(ctx context.Context, ord models.OrderPayload) error
}

// Consumer feeds order events from a Kafka topic into the same dispatch path
// as the webhook. Delivery is at-most-once: failed dispatches are logged, the
// offset still advances.
type Consumer struct {
	reader *kafka.Reader
	proc   Processor
}

func New(brokers []string, topic, group string, proc Processor) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  group,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: r, proc: proc}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		ord, err := models.ParseOrder(m.Value)
		if err != nil {
			log.Warn().Err(err).Msg("kafka decode")
			continue
		}
		if ord.Number() == "" {
			log.Warn().Msg("kafka event without order number")
			continue
		}
		if err := c.proc.Process(ctx, ord); err != nil {
			log.Warn().Err(err).Str("order", ord.Number()).Msg("kafka dispatch")
		}
	}
}
