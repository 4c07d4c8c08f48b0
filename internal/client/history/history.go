// Package history keeps the signed-in user's list of stored analyses and the
// record selected for detail. Local state changes only after the backend has
// answered, and answers for an identity that is no longer current are thrown
// away.
package history

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/plantguard/internal/client/apperr"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/client/session"
	"github.com/dmitrijs2005/plantguard/internal/logging"
)

// DeleteConfirmPrompt is passed to the confirm callback of Delete.
const DeleteConfirmPrompt = "Delete this analysis permanently?"

const (
	msgFetchFailed  = "Unable to load analysis history"
	msgDeleteFailed = "Failed to delete analysis"
)

var (
	ErrNoSession = errors.New("not signed in")
	ErrStale     = errors.New("session changed before the response arrived")
)

type ViewState int

const (
	StateIdle ViewState = iota
	StateLoading
	StateEmpty
	StateLoaded
	StateError
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

type sessionView interface {
	Current() session.State
}

type backend interface {
	ListAnalyses(ctx context.Context, ownerID string) ([]*models.Analysis, error)
	DeleteAnalysis(ctx context.Context, id, ownerID string) (int64, error)
}

type Manager struct {
	session sessionView
	backend backend
	logger  logging.Logger

	mu       sync.Mutex
	epoch    uint64
	listSeq  uint64
	items    []*models.Analysis
	state    ViewState
	err      error
	selected string
}

func NewManager(s sessionView, b backend, l logging.Logger) *Manager {
	return &Manager{session: s, backend: b, logger: l.With("module", "history")}
}

// sync drops everything held for an earlier identity. Callers hold m.mu.
func (m *Manager) sync(st session.State) {
	if st.Epoch == m.epoch {
		return
	}
	m.epoch = st.Epoch
	m.items = nil
	m.state = StateIdle
	m.err = nil
	m.selected = ""
}

// List fetches the current identity's records, newest first. A failed fetch
// leaves the manager in StateError and returns a fetch error.
func (m *Manager) List(ctx context.Context) ([]*models.Analysis, error) {
	st := m.session.Current()
	if st.Identity == nil {
		m.mu.Lock()
		m.sync(st)
		m.mu.Unlock()
		return nil, ErrNoSession
	}

	m.mu.Lock()
	m.sync(st)
	m.listSeq++
	seq := m.listSeq
	m.state = StateLoading
	m.err = nil
	m.mu.Unlock()

	items, err := m.backend.ListAnalyses(ctx, st.Identity.ID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Current().Epoch != st.Epoch || m.epoch != st.Epoch {
		m.logger.Info(ctx, "discarding history response for a previous session")
		return nil, ErrStale
	}
	if seq != m.listSeq {
		return nil, ErrStale
	}

	if err != nil {
		m.logger.Error(ctx, "failed to load history", "error", err)
		m.state = StateError
		m.err = apperr.Fetch(msgFetchFailed, err)
		return nil, m.err
	}

	m.items = slices.Clone(items)
	if len(m.items) == 0 {
		m.state = StateEmpty
	} else {
		m.state = StateLoaded
	}
	if m.selected != "" && m.indexOf(m.selected) < 0 {
		m.selected = ""
	}
	return slices.Clone(m.items), nil
}

// Delete removes the record id after confirm approves DeleteConfirmPrompt.
// It reports true only when the backend removed a row. Zero rows, a declined
// prompt or an answer for a previous session leave the local list unchanged.
func (m *Manager) Delete(ctx context.Context, id string, confirm func(prompt string) bool) (bool, error) {
	st := m.session.Current()
	if st.Identity == nil {
		return false, ErrNoSession
	}
	if confirm == nil || !confirm(DeleteConfirmPrompt) {
		return false, nil
	}

	n, err := m.backend.DeleteAnalysis(ctx, id, st.Identity.ID)
	if err != nil {
		m.logger.Error(ctx, "failed to delete analysis", "analysis_id", id, "error", err)
		return false, apperr.Delete(msgDeleteFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Current().Epoch != st.Epoch {
		return n > 0, ErrStale
	}
	m.sync(st)

	if n == 0 {
		m.logger.Info(ctx, "nothing deleted", "analysis_id", id)
		return false, nil
	}

	if i := m.indexOf(id); i >= 0 {
		m.items = slices.Delete(m.items, i, i+1)
		if len(m.items) == 0 && m.state == StateLoaded {
			m.state = StateEmpty
		}
	}
	if m.selected == id {
		m.selected = ""
	}
	return true, nil
}

// Select marks id as the detail record. It reports false when id is not in
// the local list.
func (m *Manager) Select(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sync(m.session.Current())

	if m.indexOf(id) < 0 {
		return false
	}
	m.selected = id
	return true
}

func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = ""
}

// Selected returns the detail record or nil.
func (m *Manager) Selected() *models.Analysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sync(m.session.Current())

	if i := m.indexOf(m.selected); i >= 0 {
		return m.items[i]
	}
	return nil
}

func (m *Manager) Items() []*models.Analysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sync(m.session.Current())
	return slices.Clone(m.items)
}

func (m *Manager) State() ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sync(m.session.Current())
	return m.state
}

// Err returns the error of the last failed List, if the manager is in
// StateError.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sync(m.session.Current())
	return m.err
}

func (m *Manager) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.items, func(a *models.Analysis) bool { return a.ID == id })
}
