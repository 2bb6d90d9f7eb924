package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sparsh3104/ShopStack/internal/aws"
)

const invoiceContentType = "application/pdf"

// DefaultURLTTL is the signed-URL lifetime used when no override is
// configured: one year from issuance.
const DefaultURLTTL = 365 * 24 * time.Hour

// Store persists invoice artifacts in S3 and issues presigned read URLs.
// Artifacts are immutable: every generation attempt writes under a fresh
// key and nothing is ever deleted, so the bucket keeps the full history of
// attempts. Callers deal with failures; the store does not retry.
type Store struct {
	client  aws.S3API
	presign aws.S3PresignAPI
	bucket  string
	urlTTL  time.Duration
}

// NewStore returns a Store bound to a bucket. urlTTL <= 0 falls back to
// DefaultURLTTL.
func NewStore(client aws.S3API, presign aws.S3PresignAPI, bucket string, urlTTL time.Duration) *Store {
	if urlTTL <= 0 {
		urlTTL = DefaultURLTTL
	}
	return &Store{
		client:  client,
		presign: presign,
		bucket:  bucket,
		urlTTL:  urlTTL,
	}
}

// InvoiceKey builds the storage key for one generation attempt:
// invoices/{orderId}-{unixMillis}.pdf. The timestamp component keeps
// attempts for the same order from colliding.
func InvoiceKey(orderID string, t time.Time) string {
	return fmt.Sprintf("invoices/%s-%d.pdf", orderID, t.UnixMilli())
}

// Put writes an artifact. Keys are expected to be unique per attempt, so no
// overwrite guard is needed.
func (s *Store) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: awsString(invoiceContentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// PresignGet issues a read-only URL for a stored artifact, valid for the
// configured TTL from now.
func (s *Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.urlTTL))
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return req.URL, nil
}

func awsString(s string) *string { return &s }
