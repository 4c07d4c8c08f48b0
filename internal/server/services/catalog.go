package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/server/models"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/repomanager"
	"github.com/patrickmn/go-cache"
)

const (
	speciesCacheKey  = "species"
	diseasesCacheKey = "diseases"
)

// CatalogService serves species and diseases from a TTL cache in front of
// the database. Empty results are not cached.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *cache.Cache
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, ttl time.Duration) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		cache:       cache.New(ttl, ttl*2),
	}
}

func (s *CatalogService) ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error) {
	if v, ok := s.cache.Get(speciesCacheKey); ok {
		return v.([]*models.PlantSpecies), nil
	}

	species, err := s.repomanager.Catalog(s.db).ListSpecies(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing species: %w", err)
	}
	if len(species) > 0 {
		s.cache.Set(speciesCacheKey, species, cache.DefaultExpiration)
	}
	return species, nil
}

func (s *CatalogService) ListDiseases(ctx context.Context) ([]*models.Disease, error) {
	if v, ok := s.cache.Get(diseasesCacheKey); ok {
		return v.([]*models.Disease), nil
	}

	diseases, err := s.repomanager.Catalog(s.db).ListDiseases(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing diseases: %w", err)
	}
	if len(diseases) > 0 {
		s.cache.Set(diseasesCacheKey, diseases, cache.DefaultExpiration)
	}
	return diseases, nil
}

// Invalidate drops cached reference data.
func (s *CatalogService) Invalidate() {
	s.cache.Flush()
}
