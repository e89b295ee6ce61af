package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	session *Session
	err     error
}

func (f *fakeIdentity) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeRevoker struct {
	revoked []string
	err     error
}

func (f *fakeRevoker) RevokeRefreshTokens(ctx context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestGate(identity SignInProvider, revoker Revoker) *Gate {
	policy := AllowList([]string{"admin@studio.com"})
	g := NewGate(identity, revoker, policy, testLogger())
	g.InitializeAuth()
	return g
}

func TestLoginAdminSucceeds(t *testing.T) {
	identity := &fakeIdentity{session: &Session{UID: "u1", Email: "admin@studio.com", IDToken: "tok"}}
	revoker := &fakeRevoker{}
	g := newTestGate(identity, revoker)

	res := g.Login(context.Background(), "admin@studio.com", "pw")

	require.True(t, res.Success)
	assert.Equal(t, "tok", res.IDToken)

	state := g.Current()
	require.NotNil(t, state.User)
	assert.True(t, state.IsAdmin)
	assert.Equal(t, "admin@studio.com", state.User.Email)
	assert.Empty(t, revoker.revoked)
}

func TestLoginNonAdminIsDeniedAndSignedOut(t *testing.T) {
	identity := &fakeIdentity{session: &Session{UID: "u2", Email: "visitor@example.com"}}
	revoker := &fakeRevoker{}
	g := newTestGate(identity, revoker)

	res := g.Login(context.Background(), "visitor@example.com", "correct-password")

	require.False(t, res.Success)
	assert.Equal(t, "Access denied. Admin privileges required.", res.Error)

	state := g.Current()
	assert.Nil(t, state.User)
	assert.False(t, state.IsAdmin)
	assert.Equal(t, []string{"u2"}, revoker.revoked, "session must be terminated")
}

func TestLoginProviderErrorSurfacedVerbatim(t *testing.T) {
	identity := &fakeIdentity{err: errors.New("INVALID_PASSWORD")}
	g := newTestGate(identity, &fakeRevoker{})

	res := g.Login(context.Background(), "admin@studio.com", "wrong")

	require.False(t, res.Success)
	assert.Equal(t, "INVALID_PASSWORD", res.Error)
	assert.False(t, g.Current().IsAdmin)
}

func TestLogoutAlwaysSignsOut(t *testing.T) {
	identity := &fakeIdentity{session: &Session{UID: "u1", Email: "admin@studio.com"}}
	revoker := &fakeRevoker{err: errors.New("revoke failed")}
	g := newTestGate(identity, revoker)

	require.True(t, g.Login(context.Background(), "admin@studio.com", "pw").Success)

	// revocation failure must not surface
	g.Logout(context.Background())

	state := g.Current()
	assert.Nil(t, state.User)
	assert.False(t, state.IsAdmin)
	assert.Equal(t, []string{"u1"}, revoker.revoked)
}

func TestObserversSeeEveryStateChange(t *testing.T) {
	identity := &fakeIdentity{session: &Session{UID: "u1", Email: "admin@studio.com"}}
	g := newTestGate(identity, &fakeRevoker{})

	var states []State
	g.Subscribe(func(s State) { states = append(states, s) })

	g.Login(context.Background(), "admin@studio.com", "pw")
	g.Logout(context.Background())

	require.Len(t, states, 3) // initial + login + logout
	assert.False(t, states[0].IsAdmin)
	assert.True(t, states[1].IsAdmin)
	assert.False(t, states[2].IsAdmin)
	assert.Nil(t, states[2].User)
}

func TestAllowListIsCaseInsensitive(t *testing.T) {
	policy := AllowList([]string{" Admin@Studio.com "})

	assert.True(t, policy("admin@studio.com"))
	assert.True(t, policy("ADMIN@STUDIO.COM"))
	assert.False(t, policy("other@studio.com"))
	assert.False(t, policy(""))
}
