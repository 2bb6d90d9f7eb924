package pipeline

import (
	"context"
	"log"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/sparsh3104/ShopStack/internal/aws"
)

const metricNamespace = "ShopStack/Invoicing"

// Metrics emits pipeline outcome counters to CloudWatch. Emission is
// best-effort: a failed put is logged, never propagated. A nil *Metrics is
// a valid no-op.
type Metrics struct {
	client aws.CloudWatchAPI
}

// NewMetrics returns a Metrics emitter, or nil when no client is supplied.
func NewMetrics(client aws.CloudWatchAPI) *Metrics {
	if client == nil {
		return nil
	}
	return &Metrics{client: client}
}

// CountGenerated records one successful generation attempt.
func (m *Metrics) CountGenerated(ctx context.Context) {
	m.put(ctx, "InvoiceGenerated")
}

// CountFailed records one failed generation attempt.
func (m *Metrics) CountFailed(ctx context.Context) {
	m.put(ctx, "InvoiceFailed")
}

func (m *Metrics) put(ctx context.Context, name string) {
	if m == nil {
		return
	}
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String(name),
				Value:      sdkaws.Float64(1),
				Unit:       cwtypes.StandardUnitCount,
				Timestamp:  sdkaws.Time(time.Now()),
			},
		},
	})
	if err != nil {
		log.Printf("[metrics] put metric %s failed: %v", name, err)
	}
}
