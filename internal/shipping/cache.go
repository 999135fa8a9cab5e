package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/cache"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
)

const _listKey = "shipping_rates:all"

// CachedRates is a read-through cache in front of a RateAdmin. Cache errors
// are logged and the call falls through to the store; a not-found answer is
// never cached.
type CachedRates struct {
	next  RateAdmin
	cache cache.Cache
	ttl   time.Duration
	log   logger.Logger
}

var _ RateAdmin = (*CachedRates)(nil)

func NewCachedRates(next RateAdmin, c cache.Cache, ttl time.Duration, log logger.Logger) *CachedRates {
	return &CachedRates{next: next, cache: c, ttl: ttl, log: log}
}

func rateCacheKey(zone Zone, modality Modality) string {
	return fmt.Sprintf("shipping_rate:%s:%s", zone, modality)
}

func (c *CachedRates) GetRate(ctx context.Context, zone Zone, modality Modality) (Rate, error) {
	key := rateCacheKey(zone, modality)

	var rate Rate
	if c.load(ctx, key, &rate) {
		return rate, nil
	}

	rate, err := c.next.GetRate(ctx, zone, modality)
	if err != nil {
		return Rate{}, err
	}
	c.store(ctx, key, rate)
	return rate, nil
}

func (c *CachedRates) List(ctx context.Context) ([]Rate, error) {
	var rates []Rate
	if c.load(ctx, _listKey, &rates) {
		return rates, nil
	}

	rates, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, _listKey, rates)
	return rates, nil
}

func (c *CachedRates) Upsert(ctx context.Context, r Rate) error {
	if err := c.next.Upsert(ctx, r); err != nil {
		return err
	}
	c.Invalidate(ctx, r.Zone, r.Modality)
	return nil
}

// Invalidate drops the cached pair and the cached listing.
func (c *CachedRates) Invalidate(ctx context.Context, zone Zone, modality Modality) {
	if err := c.cache.Del(ctx, rateCacheKey(zone, modality), _listKey); err != nil {
		c.log.Ctx(ctx).Warnw("shipping rate cache invalidation failed",
			"operation", "shipping.CachedRates.Invalidate",
			"zone", zone,
			"modality", modality,
			"error", err,
		)
	}
}

func (c *CachedRates) load(ctx context.Context, key string, dst any) bool {
	b, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.log.Ctx(ctx).Warnw("shipping rate cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err = json.Unmarshal(b, dst); err != nil {
		c.log.Ctx(ctx).Warnw("shipping rate cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedRates) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err = c.cache.Set(ctx, key, b, c.ttl); err != nil {
		c.log.Ctx(ctx).Warnw("shipping rate cache write failed", "key", key, "error", err)
	}
}
