// Package analyses stores user-owned diagnosis records.
package analyses

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

type Repository interface {
	// Create inserts the analysis and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, a *models.Analysis) (*models.Analysis, error)

	// ListByOwner returns userID's analyses, newest first.
	ListByOwner(ctx context.Context, userID string) ([]*models.Analysis, error)

	// DeleteByIDAndOwner removes the analysis only when it belongs to userID
	// and reports how many rows were removed.
	DeleteByIDAndOwner(ctx context.Context, id, userID string) (int64, error)
}
