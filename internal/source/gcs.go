package source

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStore is the Cloud Storage implementation of Store.
type GCSStore struct {
	client *storage.Client
}

// NewGCSStore creates a storage client from application default credentials.
func NewGCSStore(ctx context.Context) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client}, nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// ReadObject downloads an object's content.
func (s *GCSStore) ReadObject(ctx context.Context, bucket, object string) ([]byte, error) {
	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

// WriteObject uploads data as the object's content.
func (s *GCSStore) WriteObject(ctx context.Context, bucket, object string, data []byte, contentType string) error {
	w := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write GCS object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close GCS writer: %w", err)
	}
	return nil
}

// DeleteObject removes an object.
func (s *GCSStore) DeleteObject(ctx context.Context, bucket, object string) error {
	if err := s.client.Bucket(bucket).Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("delete GCS object: %w", err)
	}
	return nil
}
