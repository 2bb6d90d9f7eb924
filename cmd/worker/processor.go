package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sparsh3104/ShopStack/internal/aws"
	"github.com/sparsh3104/ShopStack/internal/orders"
	"github.com/sparsh3104/ShopStack/internal/pipeline"
)

// OrderSource is the read side of the order repository. Each event handler
// invocation re-fetches the order; nothing is cached between deliveries.
type OrderSource interface {
	Get(ctx context.Context, orderID string) (*orders.Order, error)
}

// Processor consumes order-created events and runs the invoice pipeline
// once per delivery. Delivery is at-least-once: duplicates run the pipeline
// again and write another uniquely-keyed artifact, which is wasteful but
// safe, so no deduplication is done here.
type Processor struct {
	orders OrderSource
	pipe   *pipeline.Pipeline
}

// NewProcessor creates a worker processor.
func NewProcessor(src OrderSource, pipe *pipeline.Pipeline) *Processor {
	return &Processor{
		orders: src,
		pipe:   pipe,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, the
			// message goes to the DLQ.
			log.Printf("[worker] error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg aws.OrderCreatedMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] received order=%s corr=%s", msg.OrderID, msg.CorrelationID)

	order, err := p.orders.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order %s: %w", msg.OrderID, err)
	}
	if order == nil {
		// checkout writes the order before publishing, so this means the
		// record was deleted or the message is foreign; let SQS redeliver
		// and eventually DLQ it
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	if _, err := p.pipe.Generate(ctx, order); err != nil {
		// The outcome is already written onto the order record. Redelivery
		// would not help and the manual gateway can always re-run the chain,
		// so the message is acked.
		log.Printf("[worker] invoice generation failed order=%s: %v", msg.OrderID, err)
		return nil
	}

	log.Printf("[worker] invoice generated order=%s", msg.OrderID)
	return nil
}
