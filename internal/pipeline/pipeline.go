package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sparsh3104/ShopStack/internal/artifacts"
	"github.com/sparsh3104/ShopStack/internal/invoice"
	"github.com/sparsh3104/ShopStack/internal/orders"
)

// Failure kinds. ErrRender covers malformed order input; ErrStore covers
// artifact write and URL-signing faults. Both are already recorded on the
// order when Generate returns them.
var (
	ErrRender = errors.New("invoice render failed")
	ErrStore  = errors.New("invoice store failed")
)

// OrderWriter is the slice of the order store the pipeline writes through.
type OrderWriter interface {
	SetInvoiceReady(ctx context.Context, orderID, url, invoiceID string, generatedAt time.Time) error
	SetInvoiceFailed(ctx context.Context, orderID, diagnostic string) error
}

// ArtifactStore is the slice of the artifact store the pipeline uses.
type ArtifactStore interface {
	Put(ctx context.Context, key string, body []byte) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// Result is the outcome of a successful generation attempt.
type Result struct {
	URL string
	Key string
}

// Pipeline runs one invoice generation attempt: render, store, sign, write
// the outcome back onto the order. Steps are strictly sequential and there
// is no internal retry; each invocation is independent and concurrent
// attempts for the same order race with last-write-wins semantics.
type Pipeline struct {
	orders    OrderWriter
	artifacts ArtifactStore
	metrics   *Metrics
	nowFunc   func() time.Time
}

// New wires a Pipeline. metrics may be nil.
func New(orderWriter OrderWriter, artifactStore ArtifactStore, metrics *Metrics) *Pipeline {
	return &Pipeline{
		orders:    orderWriter,
		artifacts: artifactStore,
		metrics:   metrics,
		nowFunc:   time.Now,
	}
}

// Generate renders the invoice for an order, stores it under a fresh key,
// issues a signed URL and records the outcome on the order record.
//
// On render/store/sign failure the order is marked invoiceStatus=failed
// with a short diagnostic (best-effort: a failed write-back is logged and
// swallowed) and a classified error is returned for callers that have
// someone to report to.
func (p *Pipeline) Generate(ctx context.Context, o *orders.Order) (Result, error) {
	pdf, err := invoice.Render(o)
	if err != nil {
		return Result{}, p.fail(ctx, o.OrderID, ErrRender, "render: "+err.Error())
	}

	key := artifacts.InvoiceKey(o.OrderID, p.nowFunc())
	if err := p.artifacts.Put(ctx, key, pdf); err != nil {
		return Result{}, p.fail(ctx, o.OrderID, ErrStore, "store: "+err.Error())
	}

	url, err := p.artifacts.PresignGet(ctx, key)
	if err != nil {
		return Result{}, p.fail(ctx, o.OrderID, ErrStore, "sign: "+err.Error())
	}

	if err := p.orders.SetInvoiceReady(ctx, o.OrderID, url, key, p.nowFunc()); err != nil {
		// The artifact exists and the URL is valid; only the pointer update
		// failed. The order keeps its previous invoice state.
		log.Printf("[pipeline] invoice write-back failed order=%s key=%s: %v", o.OrderID, key, err)
		p.metrics.CountFailed(ctx)
		return Result{}, fmt.Errorf("record invoice outcome: %w", err)
	}

	p.metrics.CountGenerated(ctx)
	log.Printf("[pipeline] invoice generated order=%s key=%s", o.OrderID, key)
	return Result{URL: url, Key: key}, nil
}

func (p *Pipeline) fail(ctx context.Context, orderID string, kind error, diagnostic string) error {
	if werr := p.orders.SetInvoiceFailed(ctx, orderID, diagnostic); werr != nil {
		// best-effort: log and swallow, the order is left in its prior state
		log.Printf("[pipeline] failure write-back failed order=%s: %v", orderID, werr)
	}
	p.metrics.CountFailed(ctx)
	return fmt.Errorf("%w: %s", kind, diagnostic)
}
