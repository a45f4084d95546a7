/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package session tracks whether the caller is authenticated with the identity service.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mathtrail/identity-ui/internal/flow/client"
	"github.com/mathtrail/identity-ui/internal/flow/model"
	"github.com/mathtrail/identity-ui/internal/system/log"
)

const initializeKey = "initialize"

// ResolverInterface resolves the caller's current session.
type ResolverInterface interface {
	Whoami(ctx context.Context) (*model.Session, error)
}

// State is an immutable snapshot of the store. Identity is non-nil only when
// Session is non-nil and is always Session.Identity.
type State struct {
	Session     *model.Session
	Identity    *model.Identity
	Loading     bool
	Initialized bool
}

// IsAuthenticated reports whether the snapshot holds a session.
func (s State) IsAuthenticated() bool {
	return s.Session != nil
}

// SessionInitError records why initialization ended in the anonymous state.
// It is logged, never surfaced to the user.
type SessionInitError struct {
	Cause error
}

func (e *SessionInitError) Error() string {
	return fmt.Sprintf("session initialization failed: %v", e.Cause)
}

func (e *SessionInitError) Unwrap() error {
	return e.Cause
}

// NoSession reports whether the failure only means the caller is anonymous.
func (e *SessionInitError) NoSession() bool {
	return errors.Is(e.Cause, client.ErrNoSession)
}

// Store is the single source of truth for the caller's session. Every mutation
// replaces the whole state at once.
type Store struct {
	resolver ResolverInterface
	mu       sync.RWMutex
	state    State
	group    singleflight.Group
}

// NewStore creates an empty store that is loading and not yet initialized.
func NewStore(resolver ResolverInterface) *Store {
	return &Store{
		resolver: resolver,
		state:    State{Loading: true},
	}
}

// Initialize resolves the session once. Later and concurrent calls share the
// single in-flight whoami call and return without side effects once initialized.
// A failed whoami is the anonymous state, not an error.
func (s *Store) Initialize(ctx context.Context) {
	if s.Snapshot().Initialized {
		return
	}

	// The shared call must not be cut short by whichever caller arrived first.
	sharedCtx := context.WithoutCancel(ctx)
	_, _, _ = s.group.Do(initializeKey, func() (any, error) {
		if s.Snapshot().Initialized {
			return nil, nil
		}

		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SessionStore"))
		session, err := s.resolver.Whoami(sharedCtx)
		if err != nil {
			initErr := &SessionInitError{Cause: err}
			if initErr.NoSession() {
				logger.Debug("No active session, continuing anonymously")
			} else {
				logger.Warn("Session initialization failed, continuing anonymously", log.Error(initErr))
			}
			s.replace(State{Loading: false, Initialized: true})
			return nil, nil
		}

		identity := identityOf(session)
		if identity != nil {
			logger.Debug("Session resolved", log.String("identityId", log.MaskString(identity.ID)))
		}
		s.replace(State{
			Session:     session,
			Identity:    identity,
			Loading:     false,
			Initialized: true,
		})
		return nil, nil
	})
}

// Logout clears the session locally. It does not contact the identity service and
// leaves Loading and Initialized untouched; the caller must pair it with the
// server-side logout.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Loading: s.state.Loading, Initialized: s.state.Initialized}
}

// SetSession replaces the session and derives the identity from it.
func (s *Store) SetSession(session *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Session:     session,
		Identity:    identityOf(session),
		Loading:     s.state.Loading,
		Initialized: s.state.Initialized,
	}
}

// SetLoading replaces the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Loading = loading
	s.state = next
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) replace(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func identityOf(session *model.Session) *model.Identity {
	if session == nil {
		return nil
	}
	return session.Identity
}

// CookieResolver resolves the session of one browser request by forwarding its cookies.
type CookieResolver struct {
	Client  client.FlowClientInterface
	Cookies []*http.Cookie
}

// Whoami implements ResolverInterface.
func (r *CookieResolver) Whoami(ctx context.Context) (*model.Session, error) {
	return r.Client.Whoami(ctx, r.Cookies)
}

type contextKey struct{}

// NewContext returns a context carrying the store.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the store carried by ctx, if any.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok
}
