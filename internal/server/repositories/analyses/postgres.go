package analyses

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/dbx"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

// PostgresRepository implements analysis storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Analysis) (*models.Analysis, error) {
	query := `
		INSERT INTO analyses (user_id, plant_species_id, disease_id, disease_stage, severity,
			confidence_score, image_url, segmentation_data, treatment_applied, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	var seg any
	if len(a.SegmentationData) > 0 {
		seg = []byte(a.SegmentationData)
	}

	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.PlantSpeciesID, a.DiseaseID, a.DiseaseStage, string(a.Severity),
		a.ConfidenceScore, a.ImageURL, seg, a.TreatmentApplied, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Analysis, error) {
	query := ` SELECT id, user_id, plant_species_id, disease_id, disease_stage, severity, confidence_score,
		image_url, segmentation_data, treatment_applied, notes, created_at, updated_at FROM analyses
		WHERE user_id=$1
		ORDER BY created_at DESC
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select analyses: %w", err)
	}
	defer rows.Close()

	var result []*models.Analysis
	for rows.Next() {
		var (
			item             models.Analysis
			severity         string
			seg              []byte
			treatment, notes sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.PlantSpeciesID, &item.DiseaseID, &item.DiseaseStage,
			&severity, &item.ConfidenceScore, &item.ImageURL, &seg, &treatment, &notes,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item.Severity = common.Severity(severity)
		if len(seg) > 0 {
			item.SegmentationData = append([]byte(nil), seg...)
		}
		if treatment.Valid {
			item.TreatmentApplied = &treatment.String
		}
		if notes.Valid {
			item.Notes = &notes.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByIDAndOwner(ctx context.Context, id, userID string) (int64, error) {
	query := `DELETE FROM analyses WHERE id=$1 AND user_id=$2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
