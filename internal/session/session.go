// Package session holds the dashboard's admin mode. The password is a shared
// secret compared in the clear: it keeps casual visitors away from the edit
// controls and is not an authentication boundary.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"DeliveryDashboard/internal/kv"
)

const (
	DefaultKey = "restaurantDashboardAdminMode"

	adminValue = "true"
)

type Session struct {
	mu       sync.RWMutex
	kv       kv.Store
	key      string
	password string
	admin    bool
	log      *zap.Logger
}

// New restores the admin flag from store. Only the literal "true" counts as
// logged in.
func New(ctx context.Context, store kv.Store, key, password string, log *zap.Logger) (*Session, error) {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{kv: store, key: key, password: password, log: log}

	v, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("restore admin session: %w", err)
	default:
		s.admin = string(v) == adminValue
	}
	return s, nil
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// Login enables admin mode when password equals the configured one. A wrong
// password leaves the session as it was. An empty configured password never
// matches.
func (s *Session) Login(ctx context.Context, password string) (bool, error) {
	if s.password == "" || password != s.password {
		s.log.Info("admin login rejected")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, s.key, []byte(adminValue)); err != nil {
		return false, fmt.Errorf("persist admin session: %w", err)
	}
	s.admin = true
	s.log.Info("admin login")
	return true, nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("persist admin session: %w", err)
	}
	s.admin = false
	s.log.Info("admin logout")
	return nil
}
