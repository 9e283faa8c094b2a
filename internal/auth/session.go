package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trackplay/internal/models"
)

// State is the process-wide authentication state. Exactly one of three
// phases holds at any time: initializing (IsLoading), signed-out, or
// signed-in with a non-empty Token.
type State struct {
	IsLoading  bool
	IsSignedIn bool
	Token      string
}

// Phase renders the state as a short label for status output.
func (s State) Phase() string {
	switch {
	case s.IsLoading:
		return "initializing"
	case s.IsSignedIn:
		return "signed-in"
	default:
		return "signed-out"
	}
}

// TokenSink receives the current access token. Implemented by API clients
// with a mutable bearer-token slot.
type TokenSink interface {
	SetAuthToken(token string)
}

// SessionManager owns the session state and orchestrates the credential
// store and token injection into API clients.
//
// Operations are serialized: a call observes the completed effect of the
// prior one, and token slots are only written between operations.
type SessionManager struct {
	mu     sync.Mutex
	state  State
	store  CredentialStore
	sinks  []TokenSink
	logger *log.Logger

	subMu   sync.Mutex
	subs    map[int]chan State
	nextSub int
}

// NewSessionManager creates a session manager in the initializing phase.
// The given sinks receive the access token on init and sign-in.
func NewSessionManager(store CredentialStore, logger *log.Logger, sinks ...TokenSink) *SessionManager {
	return &SessionManager{
		state:  State{IsLoading: true},
		store:  store,
		sinks:  sinks,
		logger: logger,
		subs:   map[int]chan State{},
	}
}

// Init reads the credential store on startup. A valid pair transitions the
// session to signed-in and injects the access token into all clients; any
// storage failure or absent pair transitions to signed-out. Never fatal.
func (m *SessionManager) Init(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, ok := m.store.Get(ctx)
	if !ok {
		m.transition(State{})
		return m.state
	}

	m.inject(pair.AccessToken)
	m.transition(State{IsSignedIn: true, Token: pair.AccessToken})
	return m.state
}

// SignIn persists the pair, then activates it. When persistence fails the
// in-memory state is left unchanged: a sign-in never half-succeeds into
// signed-in state without a durable pair.
func (m *SessionManager) SignIn(ctx context.Context, pair models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !pair.Valid() {
		return fmt.Errorf("cannot sign in with a partial token pair")
	}

	if err := m.store.Set(ctx, pair); err != nil {
		if m.logger != nil {
			m.logger.Errorf("failed to persist credentials: %v", err)
		}
		return fmt.Errorf("failed to persist credentials: %w", err)
	}

	m.inject(pair.AccessToken)
	m.transition(State{IsSignedIn: true, Token: pair.AccessToken})
	return nil
}

// SignOut clears the credential store and transitions to signed-out. A
// clearing failure is logged; the in-memory transition happens regardless.
func (m *SessionManager) SignOut(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil && m.logger != nil {
		m.logger.Warnf("failed to clear credentials: %v", err)
	}

	m.inject("")
	m.transition(State{})
}

// Current returns a snapshot of the session state.
func (m *SessionManager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel receiving every phase transition and a
// cancel function. Notifications never block the session manager; a
// subscriber that falls behind misses intermediate states.
func (m *SessionManager) Subscribe() (<-chan State, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan State, 8)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (m *SessionManager) inject(token string) {
	for _, sink := range m.sinks {
		sink.SetAuthToken(token)
	}
}

func (m *SessionManager) transition(next State) {
	m.state = next

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- next:
		default:
		}
	}
}
