// Package session holds the client's view of who is signed in. Store is the
// single source of truth for the current identity: sign-up, sign-in and
// sign-out go through it, and auth events pushed by the backend are applied
// on the same path.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/plantguard/internal/client/apperr"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/logging"
)

// State is a snapshot of the session. Loading is true only until the first
// answer from the backend. Epoch changes whenever the identity does.
type State struct {
	Loading  bool
	Identity *models.Identity
	Epoch    uint64
}

// SignedIn reports whether the state is resolved with an identity.
func (s State) SignedIn() bool {
	return !s.Loading && s.Identity != nil
}

type Backend interface {
	SignUp(ctx context.Context, email, password string) (*models.Identity, bool, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	Subscribe() (<-chan models.AuthEvent, func())
}

// sequencer is implemented by backends that stamp AuthEvent.Seq. After a
// direct call the store skips queued events at or below EventSeq, since
// they describe a state the call already replaced.
type sequencer interface {
	EventSeq() uint64
}

type Store struct {
	backend   Backend
	sequenced bool
	logger    logging.Logger

	mu       sync.Mutex
	state    State
	watchers map[int]chan State
	nextID   int
	closed   bool
	seen     uint64

	startOnce   sync.Once
	closeOnce   sync.Once
	unsubscribe func()
	done        chan struct{}
}

func NewStore(b Backend, l logging.Logger) *Store {
	_, sequenced := b.(sequencer)
	return &Store{
		backend:   b,
		sequenced: sequenced,
		logger:    l.With("module", "session"),
		state:     State{Loading: true},
		watchers:  make(map[int]chan State),
	}
}

// Start subscribes to backend auth events and resolves the initial session.
// It subscribes only once; later calls just re-check the session. A failed
// check resolves to signed out and is returned as an auth error.
func (s *Store) Start(ctx context.Context) error {
	s.startOnce.Do(func() {
		events, unsubscribe := s.backend.Subscribe()
		s.mu.Lock()
		s.unsubscribe = unsubscribe
		s.done = make(chan struct{})
		s.mu.Unlock()
		go s.drain(events, s.done)
	})

	sess, err := s.backend.GetSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session check failed", "error", err)
		s.apply(nil, s.backendSeq())
		return apperr.Auth(err.Error(), err)
	}
	s.apply(identityOf(sess), s.backendSeq())
	return nil
}

func (s *Store) backendSeq() uint64 {
	if !s.sequenced {
		return 0
	}
	return s.backend.(sequencer).EventSeq()
}

func (s *Store) drain(events <-chan models.AuthEvent, done chan struct{}) {
	defer close(done)
	for ev := range events {
		identity := identityOf(ev.Session)
		if ev.Kind == models.EventSignedOut {
			identity = nil
		}
		s.applyEvent(identity, ev.Seq)
	}
}

func identityOf(sess *models.Session) *models.Identity {
	if sess == nil {
		return nil
	}
	return sess.Identity
}

func sameIdentity(a, b *models.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// apply records the result of a direct backend call made at event
// sequence seq.
func (s *Store) apply(identity *models.Identity, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.seen {
		s.seen = seq
	}
	s.setLocked(identity)
}

// applyEvent records a pushed event unless a newer state is already applied.
// Events of a backend without sequencing always apply.
func (s *Store) applyEvent(identity *models.Identity, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sequenced {
		if seq <= s.seen {
			return
		}
		s.seen = seq
	}
	s.setLocked(identity)
}

// setLocked is the only place the state changes.
func (s *Store) setLocked(identity *models.Identity) {
	changed := s.state.Loading || !sameIdentity(s.state.Identity, identity)
	if !sameIdentity(s.state.Identity, identity) {
		s.state.Epoch++
	}
	s.state.Loading = false
	s.state.Identity = identity

	if changed {
		s.notifyLocked()
	}
}

func (s *Store) notifyLocked() {
	st := s.state
	for _, ch := range s.watchers {
		// keep only the latest state for slow watchers
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}

func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watch returns a channel that receives the current state and then every
// change. A slow reader only sees the latest state. cancel closes the
// channel.
func (s *Store) Watch() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	ch <- s.state
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(ch)
		}
	}
}

// ValidateSignUp runs the local sign-up form checks: email present, both
// passwords equal, minimum length.
func ValidateSignUp(email, password, confirm string) error {
	if email == "" {
		return apperr.Validation("Email is required")
	}
	if password != confirm {
		return apperr.Validation("Passwords do not match")
	}
	if len(password) < common.MinPasswordLength {
		return apperr.Validation("Password must be at least 6 characters")
	}
	return nil
}

// SignUp registers an account. It does not sign in; the bool reports that
// the account still awaits confirmation.
func (s *Store) SignUp(ctx context.Context, email, password string) (bool, error) {
	_, pending, err := s.backend.SignUp(ctx, email, password)
	if err != nil {
		return false, apperr.Auth(err.Error(), err)
	}
	s.logger.Info(ctx, "signed up", "pending", pending)
	return pending, nil
}

func (s *Store) SignIn(ctx context.Context, email, password string) error {
	sess, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return apperr.Auth(err.Error(), err)
	}
	s.apply(identityOf(sess), s.backendSeq())
	return nil
}

// SignOut ends the backend session. On failure the identity is kept.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.backend.SignOut(ctx); err != nil {
		return apperr.Auth(err.Error(), err)
	}
	s.apply(nil, s.backendSeq())
	return nil
}

// Close releases the backend subscription, waits for the event goroutine to
// exit and closes all watcher channels.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		unsubscribe, done := s.unsubscribe, s.done
		s.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
			<-done
		}

		s.mu.Lock()
		s.closed = true
		for id, ch := range s.watchers {
			delete(s.watchers, id)
			close(ch)
		}
		s.mu.Unlock()
	})
}
