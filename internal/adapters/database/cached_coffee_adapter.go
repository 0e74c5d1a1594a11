package database

import (
	"context"
	"encoding/json"
	"log"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
)

// CachedCoffeeAdapter wraps a CoffeeRepository with look-aside caching.
// The matcher reads the full active catalog on every call that misses
// the recognition cache, so this is the hot read path.
type CachedCoffeeAdapter struct {
	adapter repositories.CoffeeRepository
	cache   providers.CacheProvider
}

// NewCachedCoffeeAdapter creates a new cached coffee adapter
func NewCachedCoffeeAdapter(adapter repositories.CoffeeRepository, cache providers.CacheProvider) repositories.CoffeeRepository {
	return &CachedCoffeeAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	coffeeByIDTTL    = 300
	activeCatalogTTL = 120
)

func coffeeCacheKey(id string) string {
	return "coffee:" + id
}

const activeCatalogCacheKey = "coffees:active"

// GetByID retrieves a coffee bean by ID with caching
func (a *CachedCoffeeAdapter) GetByID(ctx context.Context, id string) (*entities.CoffeeBean, error) {
	cacheKey := coffeeCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var coffee entities.CoffeeBean
		if err := json.Unmarshal(cached, &coffee); err == nil {
			return &coffee, nil
		}
	}

	coffee, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(coffee); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, coffeeByIDTTL); err != nil {
				log.Printf("Failed to cache coffee %s: %v", id, err)
			}
		}
	}()

	return coffee, nil
}

// GetByIDs retrieves multiple coffee beans, serving what it can from cache
func (a *CachedCoffeeAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.CoffeeBean, error) {
	if len(ids) == 0 {
		return []*entities.CoffeeBean{}, nil
	}

	cacheKeys := make([]string, len(ids))
	for i, id := range ids {
		cacheKeys[i] = coffeeCacheKey(id)
	}

	cached, _ := a.cache.GetMulti(ctx, cacheKeys)

	var coffees []*entities.CoffeeBean
	var missingIDs []string

	for i, id := range ids {
		if data, ok := cached[cacheKeys[i]]; ok {
			var coffee entities.CoffeeBean
			if err := json.Unmarshal(data, &coffee); err == nil {
				coffees = append(coffees, &coffee)
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) > 0 {
		fetched, err := a.adapter.GetByIDs(ctx, missingIDs)
		if err != nil {
			return nil, err
		}
		coffees = append(coffees, fetched...)

		go func() {
			bgCtx := context.Background()
			for _, coffee := range fetched {
				if data, err := json.Marshal(coffee); err == nil {
					_ = a.cache.Set(bgCtx, coffeeCacheKey(coffee.ID), data, coffeeByIDTTL)
				}
			}
		}()
	}

	return coffees, nil
}

// ListActive returns the full active catalog with caching. The cached
// list keeps the adapter's stable iteration order.
func (a *CachedCoffeeAdapter) ListActive(ctx context.Context) ([]*entities.CoffeeBean, error) {
	if cached, err := a.cache.Get(ctx, activeCatalogCacheKey); err == nil {
		var coffees []*entities.CoffeeBean
		if err := json.Unmarshal(cached, &coffees); err == nil {
			return coffees, nil
		}
	}

	coffees, err := a.adapter.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(coffees); err == nil {
			if err := a.cache.Set(bgCtx, activeCatalogCacheKey, data, activeCatalogTTL); err != nil {
				log.Printf("Failed to cache active catalog: %v", err)
			}
		}
	}()

	return coffees, nil
}

// List delegates to the underlying adapter; filtered listings vary too
// much to be worth caching.
func (a *CachedCoffeeAdapter) List(ctx context.Context, filter repositories.CoffeeFilter) ([]*entities.CoffeeBean, error) {
	return a.adapter.List(ctx, filter)
}

// Create writes through and invalidates the catalog list
func (a *CachedCoffeeAdapter) Create(ctx context.Context, coffee *entities.CoffeeBean) error {
	if err := a.adapter.Create(ctx, coffee); err != nil {
		return err
	}
	a.invalidate(ctx, coffee.ID)
	return nil
}

// Update writes through and invalidates the affected entries
func (a *CachedCoffeeAdapter) Update(ctx context.Context, coffee *entities.CoffeeBean) error {
	if err := a.adapter.Update(ctx, coffee); err != nil {
		return err
	}
	a.invalidate(ctx, coffee.ID)
	return nil
}

func (a *CachedCoffeeAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, coffeeCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate coffee %s: %v", id, err)
	}
	if err := a.cache.Delete(ctx, activeCatalogCacheKey); err != nil {
		log.Printf("Failed to invalidate active catalog: %v", err)
	}
}
