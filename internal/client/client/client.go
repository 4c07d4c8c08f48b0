// Package client talks to the PlantGuard backend. Client describes the
// backend collaborator used by the rest of the client; GRPCClient implements
// it over gRPC, injects the access token into every call, refreshes an
// expired token transparently and pushes auth-state events to subscribers.
package client

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/client/models"
)

type Client interface {
	SignUp(ctx context.Context, email, password string) (*models.Identity, bool, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	Subscribe() (<-chan models.AuthEvent, func())

	ListSpecies(ctx context.Context) ([]*models.PlantSpecies, error)
	ListDiseases(ctx context.Context) ([]*models.Disease, error)
	InsertAnalysis(ctx context.Context, a *models.Analysis) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, ownerID string) ([]*models.Analysis, error)
	DeleteAnalysis(ctx context.Context, id, ownerID string) (int64, error)
	RequestImageUpload(ctx context.Context, contentType string) (string, string, error)

	Ping(ctx context.Context) error
	Close() error
}
