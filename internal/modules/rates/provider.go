// README: Read-through provider: cache, then store, then built-in defaults.
package rates

import (
	"context"
	"log"
)

// Provider hands the settlement service its rate table. Store and cache are
// both optional; with neither configured every call serves the built-in
// defaults.
type Provider struct {
	store    *Store
	cache    *Cache
	fallback *Table
}

func NewProvider(store *Store, cache *Cache) *Provider {
	return &Provider{store: store, cache: cache}
}

// UseFallback replaces the built-in defaults with t, typically a table
// decoded from a legacy rate file at startup.
func (p *Provider) UseFallback(t *Table) {
	p.fallback = t
}

func (p *Provider) Table(ctx context.Context) (*Table, error) {
	if p.cache != nil {
		if t, err := p.cache.Get(ctx); err != nil {
			log.Printf("rates: cache read failed: %v", err)
		} else if t != nil {
			return t, nil
		}
	}
	if p.store != nil {
		t, err := p.store.Load(ctx)
		if err != nil {
			log.Printf("rates: store load failed, using defaults: %v", err)
		} else {
			if p.cache != nil {
				if err := p.cache.Put(ctx, t); err != nil {
					log.Printf("rates: cache write failed: %v", err)
				}
			}
			return t, nil
		}
	}
	if p.fallback != nil {
		return p.fallback, nil
	}
	return Default(), nil
}
