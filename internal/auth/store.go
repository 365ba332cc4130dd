package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fragmede/authdash/internal/api"
)

// Storage keys the session is persisted under.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Transport issues the remote auth operations. *api.Client implements it.
type Transport interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

// Storage is the process-local key/value cache of the session. *cache.DB
// implements it. Multi-key writes and deletes must be atomic.
type Storage interface {
	GetSessionValue(key string) (string, bool, error)
	PutSessionValues(values map[string]string) error
	DeleteSessionValues(keys ...string) error
}

// Store owns the application's session. It is the only writer of both the
// in-memory session and its persisted copy.
//
// Operations are not serialized against each other: when two logins are in
// flight the last one to complete wins.
type Store struct {
	transport Transport
	storage   Storage
	log       *slog.Logger

	restoreOnce sync.Once

	mu    sync.RWMutex
	token string
	user  *User
	ready bool

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a store with an empty, not yet ready session. Call Restore
// once to load the persisted session.
func New(transport Transport, storage Storage, opts ...Option) *Store {
	s := &Store{
		transport: transport,
		storage:   storage,
		log:       slog.Default(),
		subs:      make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("component", "auth"))
	return s
}

// Restore loads the persisted session into memory. Only the first call does
// anything; it always leaves the store ready, whatever it found. Unreadable
// or malformed persisted state counts as no session.
func (s *Store) Restore() {
	s.restoreOnce.Do(s.restore)
}

func (s *Store) restore() {
	token, user := s.loadPersisted()

	s.mu.Lock()
	// A login that finished first is newer than anything on disk.
	if user != nil && s.token == "" {
		s.token = token
		s.user = user
	}
	s.ready = true
	restored := s.token != ""
	s.mu.Unlock()

	s.log.Info("session restoration finished", slog.Bool("authenticated", restored))
	s.notify()
}

func (s *Store) loadPersisted() (string, *User) {
	token, ok, err := s.storage.GetSessionValue(KeyToken)
	if err != nil {
		s.log.Warn("reading persisted token", slog.Any("error", err))
		return "", nil
	}
	if !ok || token == "" {
		return "", nil
	}

	raw, ok, err := s.storage.GetSessionValue(KeyUser)
	if err != nil {
		s.log.Warn("reading persisted user", slog.Any("error", err))
		return "", nil
	}
	if !ok || raw == "" {
		return "", nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("ignoring malformed persisted user", slog.Any("error", err))
		return "", nil
	}
	return token, &user
}

// Login authenticates against the backend and, on success, replaces the
// session in memory and in storage. Backend and transport errors are returned
// unchanged and leave the session untouched.
func (s *Store) Login(ctx context.Context, creds Credentials) (*api.AuthResponse, error) {
	resp, err := s.transport.Login(ctx, api.LoginRequest{
		Login:    creds.Login,
		Password: creds.Password,
	})
	if err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Register creates an account and establishes its session, with the same
// contract as Login.
func (s *Store) Register(ctx context.Context, profile Profile) (*api.AuthResponse, error) {
	resp, err := s.transport.Register(ctx, api.RegisterRequest{
		Username: profile.Username,
		Email:    profile.Email,
		Password: profile.Password,
	})
	if err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// establish sets the session from a successful auth response: memory first,
// then storage. A failed storage write is logged; memory stays authoritative.
func (s *Store) establish(resp *api.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" || !resp.HasUser() {
		return ErrMalformedResponse
	}
	var user User
	if err := json.Unmarshal(resp.User, &user); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	s.mu.Lock()
	s.token = resp.AccessToken
	s.user = &user
	s.mu.Unlock()

	if err := s.storage.PutSessionValues(map[string]string{
		KeyToken: resp.AccessToken,
		KeyUser:  string(encoded),
	}); err != nil {
		s.log.Error("persisting session", slog.Any("error", err))
	}

	s.log.Info("session established", slog.String("username", user.Username))
	s.notify()
	return nil
}

// Logout tells the backend to revoke the current token, if there is one, and
// then clears the session locally. The local clear happens even when the
// backend call fails, so Logout has no error to report.
func (s *Store) Logout(ctx context.Context) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token != "" {
		if err := s.transport.Logout(ctx, token); err != nil {
			s.log.Warn("backend logout failed, clearing local session anyway", slog.Any("error", err))
		}
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.DeleteSessionValues(KeyToken, KeyUser); err != nil {
		s.log.Error("removing persisted session", slog.Any("error", err))
	}

	s.log.Info("session cleared")
	s.notify()
}

// State returns a snapshot of the session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Token: s.token, Ready: s.ready}
	if s.user != nil {
		u := s.user.clone()
		st.User = &u
	}
	return st
}

// Token returns the current access token.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// User returns a copy of the current user record.
func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return s.user.clone(), true
}

// Ready reports whether startup restoration has finished.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Authenticated reports whether a session is held.
func (s *Store) Authenticated() bool {
	return s.State().Authenticated()
}

// Subscribe registers fn to be called with a fresh snapshot after every
// change: restoration, an established session, and logout. Listeners run on
// the goroutine that made the change and must not block. The returned func
// removes the listener.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	st := s.State()
	for _, fn := range fns {
		fn(st)
	}
}
