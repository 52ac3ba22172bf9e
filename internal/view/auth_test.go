package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordCoder/upwatch/internal/domain/session"
	"github.com/NordCoder/upwatch/internal/domain/user"
	"github.com/NordCoder/upwatch/internal/gateway"
)

func TestAuthFlow_Login(t *testing.T) {
	f := newAnonymousFixture(t)
	f.backend.authenticate = func(username, password string) (session.Credentials, error) {
		assert.Equal(t, "alice", username)
		return session.Credentials{User: alice, Access: "acc", Refresh: "ref"}, nil
	}
	a := NewAuthFlow(f.deps, f.store, f.nav)

	require.NoError(t, a.Login(context.Background(), "alice", "pw"))

	snap := f.store.Snapshot()
	assert.Equal(t, "acc", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, alice, *snap.User)
	assert.Equal(t, int32(1), f.nav.dashboards.Load())
}

func TestAuthFlow_LoginRejected(t *testing.T) {
	f := newAnonymousFixture(t)
	f.backend.authenticate = func(string, string) (session.Credentials, error) {
		return session.Credentials{}, unauthorized(gateway.OpAuthenticate)
	}
	a := NewAuthFlow(f.deps, f.store, f.nav)

	err := a.Login(context.Background(), "alice", "wrong")

	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Invalid credentials", fe.Message)
	assert.Zero(t, f.nav.logins.Load())
	assert.True(t, f.store.Snapshot().Empty())
}

func TestAuthFlow_LoginValidation(t *testing.T) {
	f := newAnonymousFixture(t)
	a := NewAuthFlow(f.deps, f.store, f.nav)

	err := a.Login(context.Background(), "", "")

	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "username is required; password is required", fe.Message)
	assert.Empty(t, f.backend.Calls())
}

func TestAuthFlow_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newAnonymousFixture(t)
		f.backend.register = func(username, _, email string) (session.Credentials, error) {
			assert.Empty(t, email)
			return session.Credentials{User: user.User{ID: 2, Username: username}, Access: "new"}, nil
		}
		a := NewAuthFlow(f.deps, f.store, f.nav)

		require.NoError(t, a.Register(context.Background(), "bob", "pw", ""))
		assert.Equal(t, "new", f.store.Token())
	})

	t.Run("detail shown", func(t *testing.T) {
		f := newAnonymousFixture(t)
		f.backend.register = func(string, string, string) (session.Credentials, error) {
			return session.Credentials{}, &gateway.RequestError{Op: gateway.OpRegister, Status: 400, Message: "Username already taken"}
		}
		a := NewAuthFlow(f.deps, f.store, f.nav)

		err := a.Register(context.Background(), "bob", "pw", "bob@example.com")

		var fe *FormError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "Username already taken", fe.Message)
	})

	t.Run("bad email", func(t *testing.T) {
		f := newAnonymousFixture(t)
		a := NewAuthFlow(f.deps, f.store, f.nav)

		err := a.Register(context.Background(), "bob", "pw", "nope")

		var fe *FormError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "email must be a valid email address", fe.Message)
	})
}

func TestAuthFlow_RefreshProfile(t *testing.T) {
	t.Run("updates user", func(t *testing.T) {
		f := newFixture(t)
		f.backend.fetchSelf = func(token string) (user.User, error) {
			assert.Equal(t, "tok", token)
			return user.User{ID: 1, Username: "alice", Email: "new@example.com"}, nil
		}
		a := NewAuthFlow(f.deps, f.store, f.nav)

		require.NoError(t, a.RefreshProfile(context.Background()))
		assert.Equal(t, "new@example.com", f.store.Snapshot().User.Email)
		assert.Equal(t, "tok", f.store.Token())
	})

	t.Run("unauthorized", func(t *testing.T) {
		f := newFixture(t)
		f.backend.fetchSelf = func(string) (user.User, error) {
			return user.User{}, unauthorized(gateway.OpFetchSelf)
		}
		a := NewAuthFlow(f.deps, f.store, f.nav)

		assert.ErrorIs(t, a.RefreshProfile(context.Background()), ErrSessionExpired)
		assert.True(t, f.store.Snapshot().Empty())
		assert.Equal(t, int32(1), f.nav.logins.Load())
	})
}

func TestAuthFlow_Logout(t *testing.T) {
	f := newFixture(t)
	a := NewAuthFlow(f.deps, f.store, f.nav)

	require.NoError(t, a.Logout(context.Background()))
	require.NoError(t, a.Logout(context.Background()))

	assert.True(t, f.store.Snapshot().Empty())
	assert.Equal(t, int32(2), f.nav.logins.Load())
}
