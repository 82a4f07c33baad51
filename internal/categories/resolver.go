package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/tradedir-backend/pkg/errors"
	"github.com/angelmondragon/tradedir-backend/pkg/logger"
	"github.com/angelmondragon/tradedir-backend/pkg/redis"
)

// Cache is the subset of the redis client used for slug lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CategorySlugKey(slug string) string
}

// Resolver maps micro-category slugs to ids, caching hits.
type Resolver struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewResolver wires the resolver. cache may be nil to disable caching.
func NewResolver(repo Repository, cache Cache, ttl time.Duration, logg *logger.Logger) (*Resolver, error) {
	if repo == nil {
		return nil, errors.New("category repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Resolver{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

// ResolveMicroSlug returns the id of the micro category named by slug, or
// nil when none exists. Cache failures fall through to the database.
func (r *Resolver) ResolveMicroSlug(ctx context.Context, slug string) (*uuid.UUID, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, nil
	}
	ctx = r.logg.WithField(ctx, "category_slug", slug)

	if id, ok := r.fromCache(ctx, slug); ok {
		return &id, nil
	}

	category, err := r.repo.FindMicroBySlug(ctx, slug)
	if err != nil {
		return nil, pkgerrors.Query(err, "failed to resolve category")
	}
	if category == nil {
		return nil, nil
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, r.cache.CategorySlugKey(slug), category.ID.String(), r.ttl); err != nil {
			r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "category.cache_set_failed")
		}
	}
	id := category.ID
	return &id, nil
}

func (r *Resolver) fromCache(ctx context.Context, slug string) (uuid.UUID, bool) {
	if r.cache == nil {
		return uuid.Nil, false
	}
	raw, err := r.cache.Get(ctx, r.cache.CategorySlugKey(slug))
	if err != nil {
		if !redis.IsMiss(err) {
			r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "category.cache_get_failed")
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "cached_value", raw), "category.cache_corrupt")
		return uuid.Nil, false
	}
	return id, true
}
