package access

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

const adminIdentitiesCacheKey = "admin_identities"

// CachedAdminScanner decorates an AdminLister with a bounded-TTL cache.
// Access scoping only narrows read visibility, so a slightly stale admin set
// merely over- or under-includes a creator's content for one request; the TTL
// bounds that window. A TTL of zero disables caching entirely and callers
// should use the inner scanner directly.
type CachedAdminScanner struct {
	inner AdminLister
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachedAdminScanner(inner AdminLister, ttl time.Duration) (*CachedAdminScanner, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 10,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &CachedAdminScanner{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}, nil
}

func (s *CachedAdminScanner) ListAdminIdentities(ctx context.Context) (map[string]struct{}, error) {
	if cached, ok := s.cache.Get(adminIdentitiesCacheKey); ok {
		if identities, ok := cached.(map[string]struct{}); ok {
			return identities, nil
		}
	}

	identities, err := s.inner.ListAdminIdentities(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetWithTTL(adminIdentitiesCacheKey, identities, int64(len(identities)+1), s.ttl)
	return identities, nil
}
