package storage

import (
	"context"
	"io"
)

// ObjectStore defines the operations the seed flow needs to host demo
// audio clips: upload a local file and produce the public URL recorded
// in the audio_samples table.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	URL(key string) string
	Bucket() string
}

// SampleStore wraps an ObjectStore backend with a stable API.
type SampleStore struct {
	backend ObjectStore
}

// NewSampleStore constructs a SampleStore for the provided backend.
func NewSampleStore(backend ObjectStore) *SampleStore {
	return &SampleStore{backend: backend}
}

// EnsureBucket ensures the configured bucket exists.
func (s *SampleStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Put uploads a clip to the configured bucket.
func (s *SampleStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

// URL returns the public URL for an uploaded clip.
func (s *SampleStore) URL(key string) string {
	return s.backend.URL(key)
}

// Bucket returns the configured bucket name.
func (s *SampleStore) Bucket() string {
	return s.backend.Bucket()
}
