package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/cryptox"
	"github.com/dmitrijs2005/plantguard/internal/server/auth"
	"github.com/dmitrijs2005/plantguard/internal/server/config"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { _ = db.Close() })
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func storedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, salt := cryptox.HashPassword([]byte(password))
	return &models.User{ID: "u1", Email: "alice@example.com", PasswordHash: hash, Salt: salt}
}

func TestSignUp_Validation(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{}})

	tests := []struct {
		name     string
		email    string
		password string
		msg      string
	}{
		{name: "empty email", email: "  ", password: "secret1", msg: "Email is required"},
		{name: "malformed email", email: "not-an-email", password: "secret1", msg: "Unable to validate email address: invalid format"},
		{name: "short password", email: "a@b.co", password: "12345", msg: "Password should be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SignUp(context.Background(), tt.email, tt.password, nil)
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestSignUp_Success(t *testing.T) {
	users := &fakeUsersRepo{}
	s := newUserService(t, &fakeRepoManager{u: users})

	u, err := s.SignUp(context.Background(), " Alice@Example.com ", "secret1", map[string]string{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "u-new", u.ID)

	require.NotNil(t, users.created)
	assert.Equal(t, "alice@example.com", users.created.Email)
	assert.Len(t, users.created.Salt, cryptox.SaltSize)
	assert.True(t, cryptox.VerifyPassword(users.created.PasswordHash, users.created.Salt, []byte("secret1")))
	assert.Equal(t, "Alice", users.created.Metadata["name"])
}

func TestSignUp_RepoErrors(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorAlreadyExists}})
	_, err := s.SignUp(context.Background(), "alice@example.com", "secret1", nil)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	s = newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{createErr: errBoom{}}})
	_, err = s.SignUp(context.Background(), "alice@example.com", "secret1", nil)
	if err == nil || !regexp.MustCompile(`error creating user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
}

func TestSignIn_Flows(t *testing.T) {
	ctx := context.Background()

	sNF := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}, r: &fakeRefreshRepo{}})
	_, _, err := sNF.SignIn(ctx, "ghost@example.com", "x")
	assert.ErrorIs(t, err, common.ErrorUnauthorized, "not found maps to unauthorized")

	sIE := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}, r: &fakeRefreshRepo{}})
	_, _, err = sIE.SignIn(ctx, "alice@example.com", "x")
	assert.ErrorIs(t, err, common.ErrorInternal)

	user := storedUser(t, "right-pass")
	sWP := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}, r: &fakeRefreshRepo{}})
	_, _, err = sWP.SignIn(ctx, "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	refresh := &fakeRefreshRepo{}
	sOK := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}, r: refresh})
	u, pair, err := sOK.SignIn(ctx, "Alice@example.com", "right-pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	require.NotNil(t, pair)
	assert.Len(t, pair.RefreshToken, 64)
	assert.Equal(t, []string{"u1:" + pair.RefreshToken}, refresh.created)

	gotID, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "u1", gotID)
}

func TestSignIn_TokenStoreError(t *testing.T) {
	user := storedUser(t, "right-pass")
	s := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}, r: &fakeRefreshRepo{createErr: errBoom{}}})

	_, _, err := s.SignIn(context.Background(), "alice@example.com", "right-pass")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	refresh := &fakeRefreshRepo{
		findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
	}
	s := NewUserService(db, &fakeRepoManager{r: refresh}, &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour})

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Len(t, refresh.created, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Failures(t *testing.T) {
	ctx := context.Background()

	s := newUserService(t, &fakeRepoManager{r: &fakeRefreshRepo{
		findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(-time.Minute)},
	}})
	_, err := s.RefreshToken(ctx, "r")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	s = newUserService(t, &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}})
	_, err = s.RefreshToken(ctx, "r")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	s = newUserService(t, &fakeRepoManager{r: &fakeRefreshRepo{findErr: errBoom{}}})
	_, err = s.RefreshToken(ctx, "r")
	if err == nil || !regexp.MustCompile(`error searching refresh token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped find error, got %v", err)
	}
}

func TestRefreshToken_RollsBack(t *testing.T) {
	tests := []struct {
		name    string
		refresh *fakeRefreshRepo
		check   func(t *testing.T, err error)
	}{
		{
			name: "delete fails",
			refresh: &fakeRefreshRepo{
				findOut: &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
				delErr:  errBoom{},
			},
			check: func(t *testing.T, err error) {
				if err == nil || !regexp.MustCompile(`error deleting refresh token: .*boom`).MatchString(err.Error()) {
					t.Fatalf("expected wrapped delete error, got %v", err)
				}
			},
		},
		{
			name: "new token cannot be stored",
			refresh: &fakeRefreshRepo{
				findOut:   &models.RefreshToken{UserID: "u1", Expires: time.Now().Add(10 * time.Minute)},
				createErr: errBoom{},
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, common.ErrorInternal) {
					t.Fatalf("expected ErrorInternal, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMockDB(t)
			defer db.Close()
			mock.ExpectBegin()
			mock.ExpectRollback()

			s := NewUserService(db, &fakeRepoManager{r: tt.refresh}, &config.Config{SecretKey: "k"})
			_, err := s.RefreshToken(context.Background(), "r")
			tt.check(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignOut(t *testing.T) {
	refresh := &fakeRefreshRepo{}
	s := newUserService(t, &fakeRepoManager{r: refresh})

	require.NoError(t, s.SignOut(context.Background(), "u1"))
	assert.Equal(t, "u1", refresh.deletedUser)

	refresh.deleteByUErr = errBoom{}
	err := s.SignOut(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`error revoking refresh tokens: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped revoke error, got %v", err)
	}
}

func TestGetUserAndPurge(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u1", Email: "alice@example.com"}},
		r: &fakeRefreshRepo{purged: 4},
	})

	u, err := s.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	n, err := s.PurgeExpiredTokens(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
