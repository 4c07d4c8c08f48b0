package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/plantguard/internal/dbx"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListSpecies returns all species ordered by name.
func (r *PostgresRepository) ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error) {
	query := `SELECT id, name, scientific_name, description, common_diseases FROM plant_species
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PlantSpecies
	for rows.Next() {
		var (
			item     models.PlantSpecies
			diseases []byte
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.ScientificName, &item.Description, &diseases); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if len(diseases) > 0 {
			if err := json.Unmarshal(diseases, &item.CommonDiseases); err != nil {
				return nil, fmt.Errorf("common_diseases decode error: %w", err)
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListDiseases returns the whole disease catalog ordered by name.
func (r *PostgresRepository) ListDiseases(ctx context.Context) ([]*models.Disease, error) {
	query := `SELECT id, name, description, stages, treatment FROM disease_catalog
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Disease
	for rows.Next() {
		var (
			item              models.Disease
			stages, treatment []byte
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &stages, &treatment); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if err := json.Unmarshal(stages, &item.Stages); err != nil {
			return nil, fmt.Errorf("stages decode error: %w", err)
		}
		if len(treatment) > 0 {
			if err := json.Unmarshal(treatment, &item.Treatment); err != nil {
				return nil, fmt.Errorf("treatment decode error: %w", err)
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
