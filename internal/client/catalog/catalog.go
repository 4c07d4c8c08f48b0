// Package catalog caches the plant species and disease reference lists the
// client reads from the backend.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/patrickmn/go-cache"
)

const (
	speciesKey  = "species"
	diseasesKey = "diseases"
)

type source interface {
	ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error)
	ListDiseases(ctx context.Context) ([]*models.Disease, error)
}

// Catalog is a read-through TTL cache. Empty lists are not cached so a
// freshly seeded backend is picked up on the next call.
type Catalog struct {
	src   source
	cache *cache.Cache
}

func New(src source, ttl time.Duration) *Catalog {
	return &Catalog{src: src, cache: cache.New(ttl, ttl*2)}
}

func cached[T any](c *Catalog, key string, load func() ([]T, error)) ([]T, error) {
	if v, ok := c.cache.Get(key); ok {
		return v.([]T), nil
	}
	items, err := load()
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		c.cache.Set(key, items, cache.DefaultExpiration)
	}
	return items, nil
}

func (c *Catalog) Species(ctx context.Context) ([]*models.PlantSpecies, error) {
	items, err := cached(c, speciesKey, func() ([]*models.PlantSpecies, error) { return c.src.ListSpecies(ctx) })
	if err != nil {
		return nil, fmt.Errorf("error loading species: %w", err)
	}
	return items, nil
}

func (c *Catalog) Diseases(ctx context.Context) ([]*models.Disease, error) {
	items, err := cached(c, diseasesKey, func() ([]*models.Disease, error) { return c.src.ListDiseases(ctx) })
	if err != nil {
		return nil, fmt.Errorf("error loading diseases: %w", err)
	}
	return items, nil
}

// SpeciesByID returns nil when id is unknown.
func (c *Catalog) SpeciesByID(ctx context.Context, id string) (*models.PlantSpecies, error) {
	items, err := c.Species(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

// DiseaseByID returns nil when id is unknown.
func (c *Catalog) DiseaseByID(ctx context.Context, id string) (*models.Disease, error) {
	items, err := c.Diseases(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (c *Catalog) Invalidate() {
	c.cache.Flush()
}
