package logomotion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// BlobScheme prefixes every reference handed out by MemoryBlobStore.
const BlobScheme = "blob:logomotion/"

// DefaultBlobTTL is how long materialized media stay resolvable.
const DefaultBlobTTL = time.Hour

type blob struct {
	data     []byte
	mimeType string
}

// MemoryBlobStore keeps media in process memory under random references.
// Entries expire after the configured TTL.
type MemoryBlobStore struct {
	items *cache.Cache
}

var _ BlobStore = (*MemoryBlobStore)(nil)

// NewMemoryBlobStore creates a store whose entries live for ttl.
// A ttl of zero or less keeps entries until revoked.
func NewMemoryBlobStore(ttl time.Duration) *MemoryBlobStore {
	cleanup := ttl / 2
	if ttl <= 0 {
		ttl = cache.NoExpiration
		cleanup = 0
	}
	return &MemoryBlobStore{items: cache.New(ttl, cleanup)}
}

// Put stores data, without copying it, under a new BlobScheme reference.
// Empty data is rejected.
func (s *MemoryBlobStore) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("storing blob: %w", ErrEmptyResult)
	}
	ref := BlobScheme + uuid.NewString()
	s.items.Set(ref, blob{data: data, mimeType: mimeType}, cache.DefaultExpiration)
	return ref, nil
}

// Get resolves ref. Unknown, expired and revoked references return ErrBlobNotFound.
func (s *MemoryBlobStore) Get(ctx context.Context, ref string) ([]byte, string, error) {
	if !strings.HasPrefix(ref, BlobScheme) {
		return nil, "", fmt.Errorf("%w: %s", ErrBlobNotFound, ref)
	}
	v, ok := s.items.Get(ref)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrBlobNotFound, ref)
	}
	b := v.(blob)
	return b.data, b.mimeType, nil
}

// Revoke removes ref from the store.
func (s *MemoryBlobStore) Revoke(ctx context.Context, ref string) {
	s.items.Delete(ref)
}

// Len returns the number of live entries.
func (s *MemoryBlobStore) Len() int {
	return s.items.ItemCount()
}
