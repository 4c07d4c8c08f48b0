package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/client/client"
	"github.com/dmitrijs2005/plantguard/internal/client/config"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory client.Client. The only account is
// ann@example.org with password "secret".
type fakeBackend struct {
	mu sync.Mutex

	identity *models.Identity
	subs     []chan models.AuthEvent

	species  []*models.PlantSpecies
	diseases []*models.Disease
	records  []*models.Analysis
	nextID   int

	pingErr   error
	signUpErr error

	signUpCalls int
	listCalls   int
	deleteCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		species: []*models.PlantSpecies{{ID: "s1", Name: "Tomato", ScientificName: "Solanum lycopersicum"}},
		diseases: []*models.Disease{{
			ID:        "d1",
			Name:      "Late Blight",
			Stages:    [4]string{"spots", "lesions", "spread", "collapse"},
			Treatment: []models.TreatmentStep{{Step: 1, Action: "Remove infected leaves"}},
		}},
	}
}

var _ client.Client = (*fakeBackend)(nil)

func (f *fakeBackend) SignUp(_ context.Context, email, _ string) (*models.Identity, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpCalls++
	if f.signUpErr != nil {
		return nil, false, f.signUpErr
	}
	return &models.Identity{ID: "new", Email: email}, false, nil
}

func (f *fakeBackend) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	if email != "ann@example.org" || password != "secret" {
		return nil, &client.RemoteError{Kind: client.ErrUnauthorized, Message: "Invalid login credentials"}
	}
	f.mu.Lock()
	f.identity = &models.Identity{ID: "u1", Email: email}
	f.mu.Unlock()
	return &models.Session{Identity: &models.Identity{ID: "u1", Email: email}}, nil
}

func (f *fakeBackend) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = nil
	return nil
}

func (f *fakeBackend) GetSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.identity == nil {
		return nil, nil
	}
	return &models.Session{Identity: f.identity}, nil
}

func (f *fakeBackend) Subscribe() (<-chan models.AuthEvent, func()) {
	ch := make(chan models.AuthEvent, 4)
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }
}

func (f *fakeBackend) ListSpecies(context.Context) ([]*models.PlantSpecies, error) {
	return f.species, nil
}

func (f *fakeBackend) ListDiseases(context.Context) ([]*models.Disease, error) {
	return f.diseases, nil
}

func (f *fakeBackend) InsertAnalysis(_ context.Context, a *models.Analysis) (*models.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	out := *a
	out.ID = fmt.Sprintf("n%d", f.nextID)
	out.CreatedAt = time.Date(2026, 10, 14, 12, f.nextID, 0, 0, time.UTC)
	f.records = append([]*models.Analysis{&out}, f.records...)
	return &out, nil
}

func (f *fakeBackend) ListAnalyses(_ context.Context, ownerID string) ([]*models.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []*models.Analysis
	for _, r := range f.records {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) DeleteAnalysis(_ context.Context, id, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	for i, r := range f.records {
		if r.ID == id && r.UserID == ownerID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeBackend) RequestImageUpload(context.Context, string) (string, string, error) {
	return "", "", client.ErrNotSupported
}

func (f *fakeBackend) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeBackend) Close() error { return nil }

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

// newTestApp builds an App over fb that reads input and writes to the
// returned buffer. The session is resolved before it returns.
func newTestApp(t *testing.T, fb *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	a := newApp(testConfig(), fb, logging.NewNop(), strings.NewReader(input), out)
	require.NoError(t, a.session.Start(context.Background()))
	t.Cleanup(a.session.Close)
	return a, out
}

func signedInApp(t *testing.T, fb *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubPasswords(t, "secret")
	a, out := newTestApp(t, fb, "ann@example.org\n"+input)
	require.NoError(t, a.SignIn(context.Background()))
	out.Reset()
	return a, out
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })

	var mu sync.Mutex
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(pws) == 0 {
			return nil, io.EOF
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
}

func record(id, owner string, stage int) *models.Analysis {
	sev, _ := common.SeverityForStage(stage)
	return &models.Analysis{
		ID:              id,
		UserID:          owner,
		PlantSpeciesID:  "s1",
		DiseaseID:       "d1",
		DiseaseStage:    stage,
		Severity:        sev,
		ConfidenceScore: 90,
		ImageURL:        "data:image/png;base64,AA",
		Notes:           "Analysis completed",
		CreatedAt:       time.Date(2026, 10, 1, 9, stage, 0, 0, time.UTC),
	}
}
