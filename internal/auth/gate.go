package auth

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// AccessDeniedMessage is returned when valid credentials belong to an email
// outside the admin allow-list.
const AccessDeniedMessage = "Access denied. Admin privileges required."

// User is the currently signed-in user, nil when signed out.
type User struct {
	UID   string
	Email string
}

// State is the pair published to observers on every session change. IsAdmin
// is recomputed from the policy on each change; no other code path sets it.
type State struct {
	User    *User
	IsAdmin bool
}

// Result is what login returns to the caller rendering feedback.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	IDToken string `json:"idToken,omitempty"`
}

// Revoker terminates a user's sessions at the identity provider. The Firebase
// Admin SDK auth client satisfies it.
type Revoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Gate tracks the current session and mediates sign-in/sign-out. It is the
// only component allowed to derive admin rights.
type Gate struct {
	identity SignInProvider
	revoker  Revoker
	policy   Policy
	log      *logrus.Logger

	initOnce  sync.Once
	mu        sync.RWMutex
	state     State
	observers []func(State)
}

// NewGate wires the gate to an identity provider, a session revoker and the
// allow-list policy.
func NewGate(identity SignInProvider, revoker Revoker, policy Policy, log *logrus.Logger) *Gate {
	return &Gate{identity: identity, revoker: revoker, policy: policy, log: log}
}

// InitializeAuth performs the process-wide one-time subscription to session
// changes: from here on, every change recomputes IsAdmin and republishes the
// state to all observers. Calling it more than once has no further effect.
func (g *Gate) InitializeAuth() {
	g.initOnce.Do(func() {
		g.mu.RLock()
		user := g.state.User
		g.mu.RUnlock()
		g.setSession(user)
	})
}

// Subscribe registers an observer for session-state changes. The observer is
// immediately called with the current state.
func (g *Gate) Subscribe(fn func(State)) {
	g.mu.Lock()
	g.observers = append(g.observers, fn)
	current := g.state
	g.mu.Unlock()
	fn(current)
}

// Current returns the current {user, isAdmin} pair.
func (g *Gate) Current() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Login verifies credentials with the identity provider, then checks the email
// against the allow-list. Non-members are signed straight back out and get a
// fixed denial message. Provider errors are surfaced verbatim and never
// retried.
func (g *Gate) Login(ctx context.Context, email, password string) Result {
	session, err := g.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	if !g.policy(session.Email) {
		if err := g.revoker.RevokeRefreshTokens(ctx, session.UID); err != nil {
			g.log.Warnf("revoke tokens for %s: %v", session.UID, err)
		}
		g.setSession(nil)
		return Result{Success: false, Error: AccessDeniedMessage}
	}

	g.setSession(&User{UID: session.UID, Email: session.Email})
	return Result{Success: true, IDToken: session.IDToken}
}

// Logout terminates the session unconditionally. It never reports an error to
// the caller; revocation problems only reach the log.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.RLock()
	user := g.state.User
	g.mu.RUnlock()

	if user != nil {
		if err := g.revoker.RevokeRefreshTokens(ctx, user.UID); err != nil {
			g.log.Warnf("revoke tokens for %s: %v", user.UID, err)
		}
	}
	g.setSession(nil)
}

// setSession recomputes IsAdmin from the policy and publishes the new state.
func (g *Gate) setSession(user *User) {
	isAdmin := user != nil && g.policy(user.Email)

	g.mu.Lock()
	g.state = State{User: user, IsAdmin: isAdmin}
	state := g.state
	observers := make([]func(State), len(g.observers))
	copy(observers, g.observers)
	g.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}
