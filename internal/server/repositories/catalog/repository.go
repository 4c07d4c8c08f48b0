// Package catalog provides read access to the reference data: plant species
// and the disease catalog.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

type Repository interface {
	ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error)
	ListDiseases(ctx context.Context) ([]*models.Disease, error)
}
