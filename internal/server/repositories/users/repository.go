// Package users declares the account repository used by sign-up and sign-in.
package users

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
