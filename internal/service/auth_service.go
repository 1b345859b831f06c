package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go-stockbill/internal/model"
	"go-stockbill/pkg/kvstore"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// sessionKey is the key-value slot holding the signed-in identity.
const sessionKey = "user"

// CredentialVerifier checks a username/password pair and returns the matched
// identity. The fixed demo table is one implementation; a real deployment
// would plug in an authenticated backend here.
type CredentialVerifier interface {
	Verify(username, password string) (*model.User, error)
}

type fixedCredentials struct {
	table []model.Credential
}

// NewFixedCredentials returns a verifier over a fixed in-memory credential
// table.
func NewFixedCredentials(table []model.Credential) CredentialVerifier {
	return &fixedCredentials{table: table}
}

// Verify returns the same generic error for unknown users and wrong
// passwords so nothing leaks about which half failed.
func (f *fixedCredentials) Verify(username, password string) (*model.User, error) {
	for i := range f.table {
		if strings.EqualFold(f.table[i].User.Username, username) && f.table[i].CheckPassword(password) {
			user := f.table[i].User
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// AuthService owns the single session slot: at most one signed-in identity,
// held in memory and mirrored into the key-value store so it survives a
// restart.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	Logout() error
	Restore() (*model.User, error)
	Current() *model.User
}

type authService struct {
	verifier CredentialVerifier
	store    kvstore.Store
	latency  time.Duration

	mu      sync.Mutex
	current *model.User
}

// NewAuthService wires the session store. latency is the artificial delay
// applied to Login so UI loading states are exercised; tests pass zero.
func NewAuthService(verifier CredentialVerifier, store kvstore.Store, latency time.Duration) AuthService {
	return &authService{
		verifier: verifier,
		store:    store,
		latency:  latency,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	user, err := s.verifier.Verify(username, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(sessionKey, user); err != nil {
		return nil, err
	}
	s.current = user
	return user, nil
}

// Logout clears the persisted identity. It always leaves the service
// signed out, even if the store write fails.
func (s *authService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return s.store.Remove(sessionKey)
}

// Restore reads the persisted identity without re-validating credentials.
// Trust-on-read: whatever the store holds is accepted as authentic, which
// is acceptable only while the store stands in for a real session backend.
func (s *authService) Restore() (*model.User, error) {
	var user model.User
	err := s.store.Get(sessionKey, &user)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	return &user, nil
}

func (s *authService) Current() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
