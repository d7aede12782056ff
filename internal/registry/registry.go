package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/pkg/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// DefaultCacheSize bounds the number of cached filter profiles
const DefaultCacheSize = 128

// FilterRegistry resolves filter names to validated transmission profiles.
// Profiles are read from the store once and then served from an LRU cache.
type FilterRegistry struct {
	repo  repository.FilterRepository
	cache *lru.Cache[string, *models.FilterProfile]
}

// NewFilterRegistry creates a registry over the given store
func NewFilterRegistry(repo repository.FilterRepository, cacheSize int) (*FilterRegistry, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, *models.FilterProfile](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter cache: %w", err)
	}

	return &FilterRegistry{repo: repo, cache: cache}, nil
}

// GetFilter returns the profile for name. Unknown names yield a NotFoundError
// and stored profiles that break the curve invariants a DataCorruptionError.
func (r *FilterRegistry) GetFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	if profile, ok := r.cache.Get(name); ok {
		return profile, nil
	}

	profile, err := r.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &models.NotFoundError{Resource: "filter", Key: name}
		}
		return nil, fmt.Errorf("failed to load filter %s: %w", name, err)
	}

	if err := profile.Validate(); err != nil {
		log.Warn().Str("filter", name).Err(err).Msg("Stored filter profile is corrupt")
		return nil, err
	}

	r.cache.Add(name, profile)
	log.Debug().Str("filter", name).Int("points", len(profile.Wavelength)).Msg("Cached filter profile")
	return profile, nil
}

// Invalidate drops a cached profile after the store has been rewritten
func (r *FilterRegistry) Invalidate(name string) {
	r.cache.Remove(name)
}

// Names lists the filters available in the store
func (r *FilterRegistry) Names(ctx context.Context) ([]string, error) {
	return r.repo.List(ctx)
}
