// Package typecache provides binding-aware memoization of resolved types.
//
// The same declared type is commonly resolved under many different generic
// bindings, so cache keys combine the type's textual identity with every
// registered generic binding. The store is LRU-bounded: large inputs evict
// old entries instead of growing without limit, and Clear separates
// unrelated generation runs.
package typecache

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tsforge/tsforge/internal/diagnostic"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// DefaultSize bounds the store when no size is configured.
const DefaultSize = 1024

// Manager memoizes resolved TypeInfo values keyed by type text plus generic
// bindings. Traversal is single-threaded; the underlying store's own locking
// only matters when independent resolvers share one manager.
type Manager struct {
	store *lru.Cache[string, typeinfo.TypeInfo]
	diags *diagnostic.Collector
}

// New creates a Manager bounded to size entries (DefaultSize if size <= 0).
func New(size int) (*Manager, error) {
	if size <= 0 {
		size = DefaultSize
	}
	store, err := lru.New[string, typeinfo.TypeInfo](size)
	if err != nil {
		return nil, fmt.Errorf("creating type cache store: %w", err)
	}
	return &Manager{store: store}, nil
}

// SetDiagnostics attaches a collector that receives a report whenever a
// corrupt entry is discarded. A nil collector drops the reports.
func (m *Manager) SetDiagnostics(c *diagnostic.Collector) {
	m.diags = c
}

// Key derives the cache key for a type under the given generic context.
// Segments are sorted by parameter name so registration order never changes
// the key. A nil or empty context keys on the type text alone.
func (m *Manager) Key(typeText string, gctx *generics.Context) string {
	if gctx == nil {
		return typeText
	}
	params := gctx.Params()
	if len(params) == 0 {
		return typeText
	}

	segments := make([]string, 0, len(params))
	for _, p := range params {
		if bound, ok := gctx.ResolvedType(p.Name); ok {
			segments = append(segments, fmt.Sprintf("%s=%s:%s", p.Name, bound.Kind, typeinfo.Serialize(bound)))
		} else {
			segments = append(segments, p.Name+"=unresolved")
		}
	}
	sort.Strings(segments)

	return typeText + "::" + strings.Join(segments, "|")
}

// Get returns the cached entry for key. Entries missing their kind
// discriminant are treated as corrupt: discarded and reported as a miss.
func (m *Manager) Get(key string) (typeinfo.TypeInfo, bool) {
	entry, ok := m.store.Get(key)
	if !ok {
		return typeinfo.TypeInfo{}, false
	}
	if entry.Kind == "" {
		m.store.Remove(key)
		m.diags.WarnWithHint(diagnostic.CategoryCacheDiscard, key,
			"discarding cache entry with no kind discriminant",
			"the type is recomputed on the next lookup")
		return typeinfo.TypeInfo{}, false
	}
	return entry, true
}

// Set stores a resolved type under key.
func (m *Manager) Set(key string, t typeinfo.TypeInfo) {
	m.store.Add(key, t)
}

// Clear empties the cache. Call between unrelated generation runs.
func (m *Manager) Clear() {
	m.store.Purge()
}

// Len returns the number of live entries.
func (m *Manager) Len() int {
	return m.store.Len()
}
