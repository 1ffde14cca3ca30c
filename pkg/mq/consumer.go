package mq

import (
	"context"
	"errors"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch *amqp.Channel
}

func NewRabbitConsumer(ch *amqp.Channel) Consumer {
	return &RabbitConsumer{ch: ch}
}

// Consume runs handler for every delivery on queue. Up to prefetch deliveries
// are handled concurrently; each one is acked once its handler returns nil and
// nacked otherwise, requeued only for temporary errors. Consume returns after
// all in-flight handlers have finished.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	tag := queue + ".consumer"
	deliveries, err := c.ch.Consume(
		queue,
		tag,
		false,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel(tag, false)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			wg.Add(1)
			go func(d amqp.Delivery) {
				defer wg.Done()

				if err := handler(ctx, d.Body); err != nil {
					_ = d.Nack(false, shouldRequeue(err))
					return
				}

				_ = d.Ack(false)
			}(d)
		}
	}
}

func shouldRequeue(err error) bool {
	var te TempError
	return errors.As(err, &te) && te.Temporary()
}
