package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sparsh3104/ShopStack/internal/artifacts"
	internalaws "github.com/sparsh3104/ShopStack/internal/aws"
	"github.com/sparsh3104/ShopStack/internal/orders"
	"github.com/sparsh3104/ShopStack/internal/pipeline"
)

func main() {
	ctx := context.Background()

	clients, err := internalaws.NewAWSClients(ctx)
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	urlTTL := artifacts.DefaultURLTTL
	if v := os.Getenv("INVOICE_URL_TTL"); v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			log.Fatalf("invalid INVOICE_URL_TTL %q: %v", v, perr)
		}
		urlTTL = d
	}

	orderStore := orders.NewStore(clients.DynamoDB, os.Getenv("ORDERS_TABLE"))
	artifactStore := artifacts.NewStore(clients.S3, clients.S3Presign, os.Getenv("INVOICE_BUCKET"), urlTTL)
	pipe := pipeline.New(orderStore, artifactStore, pipeline.NewMetrics(clients.CloudWatch))
	p := NewProcessor(orderStore, pipe)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"order_id":"local-order-1"}`
		}
		ev := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: body},
			},
		}
		if err := p.Handle(ctx, ev); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}
