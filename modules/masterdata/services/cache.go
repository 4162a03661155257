package services

import (
	"sync"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

// NewCacheInvalidator builds the shared read cache and subscribes its
// invalidation handlers: record writes drop that record's entry, bulk
// uploads drop the whole kind.
func NewCacheInvalidator(bus eventbus.EventBus) *masterCache {
	cache := newMasterCache()
	bus.Subscribe(func(e RTOCreatedEvent) { cache.Invalidate(insurer.KindRTO, e.ID) })
	bus.Subscribe(func(e RTOUpdatedEvent) { cache.Invalidate(insurer.KindRTO, e.ID) })
	bus.Subscribe(func(e MMVCreatedEvent) { cache.Invalidate(insurer.KindMMV, string(e.Code)) })
	bus.Subscribe(func(e MMVUpdatedEvent) { cache.Invalidate(insurer.KindMMV, string(e.Code)) })
	bus.Subscribe(func(e PincodeCreatedEvent) { cache.Invalidate(insurer.KindPincode, e.Pincode) })
	bus.Subscribe(func(e PincodeUpdatedEvent) { cache.Invalidate(insurer.KindPincode, e.Pincode) })
	bus.Subscribe(func(e MappingUpdatedEvent) { cache.Invalidate(e.Kind, e.Key) })
	bus.Subscribe(func(e BulkUploadCompletedEvent) { cache.InvalidateKind(e.Kind) })
	return cache
}

// masterCache is a read cache for single-record lookups, indexed by
// master kind so invalidation stays scoped to the records a write
// actually touched.
type masterCache struct {
	mu        sync.RWMutex
	entries   map[string]any
	kindIndex map[insurer.MasterKind]map[string]struct{}
}

func newMasterCache() *masterCache {
	return &masterCache{
		entries:   make(map[string]any),
		kindIndex: make(map[insurer.MasterKind]map[string]struct{}),
	}
}

func cacheKey(kind insurer.MasterKind, key string) string {
	return string(kind) + ":" + key
}

func (c *masterCache) Get(kind insurer.MasterKind, key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey(kind, key)]
	return v, ok
}

func (c *masterCache) Set(kind insurer.MasterKind, key string, value any) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ck := cacheKey(kind, key)
	c.entries[ck] = value
	if _, ok := c.kindIndex[kind]; !ok {
		c.kindIndex[kind] = make(map[string]struct{})
	}
	c.kindIndex[kind][ck] = struct{}{}
}

// Invalidate drops one record's entry.
func (c *masterCache) Invalidate(kind insurer.MasterKind, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ck := cacheKey(kind, key)
	delete(c.entries, ck)
	if keys, ok := c.kindIndex[kind]; ok {
		delete(keys, ck)
	}
}

// InvalidateKind drops every entry of one master kind. Used after bulk
// uploads, which touch an unknown subset of rows.
func (c *masterCache) InvalidateKind(kind insurer.MasterKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ck := range c.kindIndex[kind] {
		delete(c.entries, ck)
	}
	delete(c.kindIndex, kind)
}
