package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/sdweddings/backend/internal/cache"
	"github.com/sdweddings/backend/internal/domain"
)

// Cache keys for render-path reads.
const (
	keyCoupleViews = "couples:views"
	keyVendors     = "vendors:all"
	keyVenues      = "venues:all"
)

// NewCachedCoupleRepo wraps inner so that ListViews is served from c.
// Paged reads, migration reads and writes pass straight through.
func NewCachedCoupleRepo(inner CoupleRepo, c cache.Cache, log *zap.Logger) CoupleRepo {
	return &cachedCoupleRepo{CoupleRepo: inner, cache: c, log: log}
}

type cachedCoupleRepo struct {
	CoupleRepo
	cache cache.Cache
	log   *zap.Logger
}

func (r *cachedCoupleRepo) ListViews(ctx context.Context) ([]domain.CoupleView, error) {
	return readThrough(ctx, r.cache, r.log, keyCoupleViews, r.CoupleRepo.ListViews)
}

// NewCachedVendorRepo wraps inner so that List is served from c.
func NewCachedVendorRepo(inner VendorRepo, c cache.Cache, log *zap.Logger) VendorRepo {
	return &cachedVendorRepo{VendorRepo: inner, cache: c, log: log}
}

type cachedVendorRepo struct {
	VendorRepo
	cache cache.Cache
	log   *zap.Logger
}

func (r *cachedVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	return readThrough(ctx, r.cache, r.log, keyVendors, r.VendorRepo.List)
}

// NewCachedVenueRepo wraps inner so that List is served from c.
func NewCachedVenueRepo(inner VenueRepo, c cache.Cache, log *zap.Logger) VenueRepo {
	return &cachedVenueRepo{VenueRepo: inner, cache: c, log: log}
}

type cachedVenueRepo struct {
	VenueRepo
	cache cache.Cache
	log   *zap.Logger
}

func (r *cachedVenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	return readThrough(ctx, r.cache, r.log, keyVenues, r.VenueRepo.List)
}

// readThrough returns the cached value for key or calls fetch and stores the
// result. Cache failures are logged and never fail the read.
func readThrough[T any](ctx context.Context, c cache.Cache, log *zap.Logger, key string, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if err := c.SetJSON(ctx, key, v); err != nil {
		log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
