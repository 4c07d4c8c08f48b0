// Package repomanager vends repository implementations bound to a DBTX and
// runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/plantguard/internal/dbx"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/analyses"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	Analyses(db dbx.DBTX) analyses.Repository
}
