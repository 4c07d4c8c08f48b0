// Package refreshtokens declares storage for the opaque refresh tokens that
// back session renewal.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	Delete(ctx context.Context, token string) error

	// DeleteByUser revokes every token held by userID.
	DeleteByUser(ctx context.Context, userID string) error

	// DeleteExpired purges tokens that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
