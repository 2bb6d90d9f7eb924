package artifacts

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockS3 struct {
	objects map[string][]byte
	putErr  error

	lastBucket      string
	lastContentType string
}

func newMockS3() *mockS3 {
	return &mockS3{objects: map[string][]byte{}}
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.lastBucket = *params.Bucket
	if params.ContentType != nil {
		m.lastContentType = *params.ContentType
	}
	m.objects[*params.Key] = body
	return &s3.PutObjectOutput{}, nil
}

type mockPresign struct {
	err error
}

func (m *mockPresign) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &v4.PresignedHTTPRequest{
		URL:    "https://" + *params.Bucket + ".s3.amazonaws.com/" + *params.Key + "?X-Amz-Signature=abc",
		Method: "GET",
	}, nil
}

func TestInvoiceKey_Pattern(t *testing.T) {
	key := InvoiceKey("o1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if ok, _ := regexp.MatchString(`^invoices/o1-\d+\.pdf$`, key); !ok {
		t.Fatalf("key does not match pattern: %s", key)
	}
}

func TestInvoiceKey_UniquePerAttempt(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := InvoiceKey("o1", base)
	b := InvoiceKey("o1", base.Add(time.Millisecond))
	if a == b {
		t.Fatalf("expected distinct keys for distinct attempts, got %s twice", a)
	}
}

func TestPut_WritesWithoutOverwriting(t *testing.T) {
	m := newMockS3()
	s := NewStore(m, &mockPresign{}, "shopstack-invoices", 0)
	ctx := context.Background()

	if err := s.Put(ctx, "invoices/o1-1.pdf", []byte("first")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "invoices/o1-2.pdf", []byte("second")); err != nil {
		t.Fatalf("put: %v", err)
	}

	if m.lastBucket != "shopstack-invoices" {
		t.Fatalf("bucket mismatch: %s", m.lastBucket)
	}
	if m.lastContentType != "application/pdf" {
		t.Fatalf("content type mismatch: %s", m.lastContentType)
	}
	if string(m.objects["invoices/o1-1.pdf"]) != "first" || string(m.objects["invoices/o1-2.pdf"]) != "second" {
		t.Fatalf("expected both artifacts retained: %v", m.objects)
	}
}

func TestPut_SurfacesError(t *testing.T) {
	m := newMockS3()
	m.putErr = errors.New("slow down")
	s := NewStore(m, &mockPresign{}, "shopstack-invoices", 0)

	if err := s.Put(context.Background(), "invoices/o1-1.pdf", []byte("x")); err == nil {
		t.Fatal("expected error from failed write")
	}
}

func TestPresignGet(t *testing.T) {
	s := NewStore(newMockS3(), &mockPresign{}, "shopstack-invoices", 24*time.Hour)

	url, err := s.PresignGet(context.Background(), "invoices/o1-1.pdf")
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if url == "" {
		t.Fatal("expected non-empty url")
	}
}

func TestPresignGet_SurfacesError(t *testing.T) {
	s := NewStore(newMockS3(), &mockPresign{err: errors.New("denied")}, "shopstack-invoices", 0)

	if _, err := s.PresignGet(context.Background(), "invoices/o1-1.pdf"); err == nil {
		t.Fatal("expected error from failed signing")
	}
}
