// Package catalog orchestrates the cache tiers in front of the origin
// API. Every read resolves Local -> Shared -> Origin, short-circuiting
// on the first hit, and populates the faster tiers on the way back.
// Callers above this package are unaware of caching.
package catalog

import (
	"encoding/json"
	"log"

	"katalog/internal/cache"
	"katalog/internal/media"
	"katalog/internal/normalize"
)

// LocalCache is the process-private tier.
type LocalCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// SharedCache is the cross-client tier. Set reports an outcome rather
// than an error; a skipped write never fails the request.
type SharedCache interface {
	Get(namespace, key string) ([]byte, bool)
	Set(namespace, key string, value []byte) cache.WriteOutcome
}

// Origin is the upstream catalog API.
type Origin interface {
	FetchCategory(action string, page int) media.ListPage
	Search(query string) media.ListPage
	FetchDetail(detailPath string) map[string]any
}

// Service resolves catalog reads through the tier chain.
type Service struct {
	local  LocalCache
	shared SharedCache
	origin Origin

	// Logf receives diagnostics for skipped cache writes. Defaults to
	// log.Printf; tests replace it.
	Logf func(format string, args ...any)
}

// New creates a facade over the given tiers. All collaborators are
// injected so tests can substitute in-memory fakes.
func New(local LocalCache, shared SharedCache, origin Origin) *Service {
	return &Service{
		local:  local,
		shared: shared,
		origin: origin,
		Logf:   log.Printf,
	}
}

// FetchCategory returns one page of a category listing. Origin
// successes are written through to both tiers; failures are returned
// as the empty shape and never cached.
func (s *Service) FetchCategory(action string, page int) media.ListPage {
	key := cache.CategoryKey(action, page)

	if p, ok := getListPage(s.local, key); ok {
		return p
	}

	if b, ok := s.shared.Get(cache.NSCategories, key); ok {
		var p media.ListPage
		if err := json.Unmarshal(b, &p); err == nil {
			s.local.Set(key, b)
			return p
		}
	}

	p := s.origin.FetchCategory(action, page)
	if !p.Success {
		return media.EmptyListPage()
	}

	if b, err := json.Marshal(p); err == nil {
		s.writeShared(cache.NSCategories, key, b)
		s.local.Set(key, b)
	}
	return p
}

// Search returns results for a free-text query. Search results stay
// out of the shared tier: free-text keys would grow without bound and
// results are kept origin-fresh.
func (s *Service) Search(query string) media.ListPage {
	key := cache.SearchKey(query)

	if p, ok := getListPage(s.local, key); ok {
		return p
	}

	p := s.origin.Search(query)
	if !p.Success {
		return media.EmptyListPage()
	}

	if b, err := json.Marshal(p); err == nil {
		s.local.Set(key, b)
	}
	return p
}

// GetDetail returns the normalized detail record for a detail path.
// The second return value is false when the origin has nothing or is
// unreachable; callers render that as "not found".
func (s *Service) GetDetail(detailPath string) (media.Detail, bool) {
	key := cache.DetailKey(detailPath)

	if b, ok := s.local.Get(key); ok {
		var d media.Detail
		if err := json.Unmarshal(b, &d); err == nil {
			return d, true
		}
	}

	if b, ok := s.shared.Get(cache.NSDetails, key); ok {
		var d media.Detail
		if err := json.Unmarshal(b, &d); err == nil {
			s.local.Set(key, b)
			return d, true
		}
	}

	raw := s.origin.FetchDetail(detailPath)
	if raw == nil {
		return media.Detail{}, false
	}

	d := normalize.Record(raw)
	if b, err := json.Marshal(d); err == nil {
		s.writeShared(cache.NSDetails, key, b)
		s.local.Set(key, b)
	}
	return d, true
}

func (s *Service) writeShared(namespace, key string, value []byte) {
	if out := s.shared.Set(namespace, key, value); !out.Written {
		s.Logf("shared cache write skipped for %s/%s: %s", namespace, key, out.Reason)
	}
}

func getListPage(local LocalCache, key string) (media.ListPage, bool) {
	b, ok := local.Get(key)
	if !ok {
		return media.ListPage{}, false
	}
	var p media.ListPage
	if err := json.Unmarshal(b, &p); err != nil {
		return media.ListPage{}, false
	}
	return p, true
}
