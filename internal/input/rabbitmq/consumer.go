package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"shoprelay/internal/models"
)

type Processor interface {
	Process(ctx context.Context, ord models.OrderPayload) error
}

// Consumer feeds order events from an AMQP queue into the dispatch path.
// Messages are auto-acked; failed dispatches are logged and dropped.
type Consumer struct {
	url   string
	queue string
	proc  Processor
}

func New(url, queue string, proc Processor) *Consumer {
	return &Consumer{url: url, queue: queue, proc: proc}
}

func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	msgs, err := ch.Consume(c.queue, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			ord, err := models.ParseOrder(m.Body)
			if err != nil {
				log.Warn().Err(err).Msg("amqp decode")
				continue
			}
			if ord.Number() == "" {
				log.Warn().Msg("amqp event without order number")
				continue
			}
			if err := c.proc.Process(ctx, ord); err != nil {
				log.Warn().Err(err).Str("order", ord.Number()).Msg("amqp dispatch")
			}
		}
	}
}
