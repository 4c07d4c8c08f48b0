package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/plantguard/internal/dbx"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
	analysesrepo "github.com/dmitrijs2005/plantguard/internal/server/repositories/analyses"
	catalogrepo "github.com/dmitrijs2005/plantguard/internal/server/repositories/catalog"
	refreshtokensrepo "github.com/dmitrijs2005/plantguard/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/plantguard/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-new"
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	created      []string
	deletedUser  string
	deleteByUErr error
	purged       int64
	purgeErr     error
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID string, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID+":"+token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(context.Context, string) error { return f.delErr }

func (f *fakeRefreshRepo) DeleteByUser(_ context.Context, userID string) error {
	f.deletedUser = userID
	return f.deleteByUErr
}

func (f *fakeRefreshRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return f.purged, f.purgeErr
}

type fakeCatalogRepo struct {
	species  []*models.PlantSpecies
	diseases []*models.Disease
	err      error

	speciesCalls  int
	diseasesCalls int
}

func (f *fakeCatalogRepo) ListSpecies(context.Context) ([]*models.PlantSpecies, error) {
	f.speciesCalls++
	return f.species, f.err
}

func (f *fakeCatalogRepo) ListDiseases(context.Context) ([]*models.Disease, error) {
	f.diseasesCalls++
	return f.diseases, f.err
}

type fakeAnalysesRepo struct {
	created   *models.Analysis
	createErr error

	listOut   []*models.Analysis
	listErr   error
	listOwner string

	deleteN     int64
	deleteErr   error
	deleteID    string
	deleteOwner string
}

func (f *fakeAnalysesRepo) Create(_ context.Context, a *models.Analysis) (*models.Analysis, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = "a-new"
	f.created = a
	return a, nil
}

func (f *fakeAnalysesRepo) ListByOwner(_ context.Context, userID string) ([]*models.Analysis, error) {
	f.listOwner = userID
	return f.listOut, f.listErr
}

func (f *fakeAnalysesRepo) DeleteByIDAndOwner(_ context.Context, id, userID string) (int64, error) {
	f.deleteID, f.deleteOwner = id, userID
	return f.deleteN, f.deleteErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	c *fakeCatalogRepo
	a *fakeAnalysesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Catalog(dbx.DBTX) catalogrepo.Repository             { return m.c }
func (m *fakeRepoManager) Analyses(dbx.DBTX) analysesrepo.Repository           { return m.a }
