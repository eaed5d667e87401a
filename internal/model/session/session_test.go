package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/storage"
)

type demoConfig struct{}

func (demoConfig) DemoCredentials() (string, string) {
	return "demo@example.com", "password123"
}

func newTestAuth() (*Auth, *storage.InMemStorage, *records.Store) {
	medium := storage.NewInMemStorage()
	store := records.New(medium)
	return NewAuth(store, New(medium), demoConfig{}), medium, store
}

func Test_OnSignupThenLogin_ShouldEstablishSameSession(t *testing.T) {
	ctx := context.Background()
	auth, medium, store := newTestAuth()

	signedUp, err := auth.Signup(ctx, "Alice", "alice@x.com", "longpass1", "longpass1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", signedUp.Name)
	assert.Equal(t, "alice@x.com", signedUp.Email)
	assert.NotEmpty(t, signedUp.ID)

	users, err := store.List(ctx, records.Users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	_, hasID := users[0].ID()
	assert.True(t, hasID)
	assert.Equal(t, "longpass1", users[0].String("password"))

	current, ok, err := auth.Session().Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, signedUp, current)
	afterSignup, _, _ := medium.Read(ctx, userKey)

	require.NoError(t, auth.Logout(ctx))
	_, ok, _ = auth.Session().Current(ctx)
	assert.False(t, ok)

	loggedIn, ok, err := auth.Login(ctx, "alice@x.com", "longpass1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, signedUp, loggedIn)

	afterLogin, _, _ := medium.Read(ctx, userKey)
	assert.JSONEq(t, afterSignup, afterLogin)
	flag, _, _ := medium.Read(ctx, loggedInKey)
	assert.Equal(t, "true", flag)
}

func Test_OnSignup_ShouldValidateBeforeWriting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name, email, password, confirm string
		field                          string
	}{
		{"", "a@x.com", "longpass1", "longpass1", "name"},
		{"Alice", "not-an-email", "longpass1", "longpass1", "email"},
		{"Alice", "a@x.com", "longpass1", "longpass2", "password"},
		{"Alice", "a@x.com", "short", "short", "password"},
	}
	for _, tt := range tests {
		auth, medium, _ := newTestAuth()
		_, err := auth.Signup(ctx, tt.name, tt.email, tt.password, tt.confirm)
		require.Error(t, err)
		assert.True(t, customerr.IsValidation(err))
		assert.Empty(t, medium.Keys())
	}
}

func Test_OnSignupWithTakenEmail_ShouldFail(t *testing.T) {
	ctx := context.Background()
	auth, _, store := newTestAuth()

	_, err := auth.Signup(ctx, "Alice", "alice@x.com", "longpass1", "longpass1")
	require.NoError(t, err)

	_, err = auth.Signup(ctx, "Other Alice", "ALICE@x.com", "longpass2", "longpass2")
	assert.ErrorIs(t, err, customerr.ErrEmailTaken)

	users, _ := store.List(ctx, records.Users)
	assert.Len(t, users, 1)
}

func Test_OnDemoLogin_ShouldUseDemoProfile(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	p, ok, err := auth.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.Profile{ID: "demo-user-id", Name: "Demo User", Email: "demo@example.com"}, p)
}

func Test_OnWrongPassword_ShouldNotLogIn(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	_, err := auth.Signup(ctx, "Alice", "alice@x.com", "longpass1", "longpass1")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))

	_, ok, err := auth.Login(ctx, "alice@x.com", "wrongpass")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.Session().Require(ctx)
	assert.ErrorIs(t, err, customerr.ErrNotLoggedIn)
}

func Test_OnGarbageSessionKeys_ShouldReadAsLoggedOut(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewInMemStorage()
	s := New(medium)

	require.NoError(t, medium.Write(ctx, loggedInKey, "true"))
	require.NoError(t, medium.Write(ctx, userKey, "{broken"))
	_, ok, err := s.Current(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, medium.Write(ctx, loggedInKey, "yes"))
	require.NoError(t, medium.Write(ctx, userKey, `{"id":"1","name":"A","email":"a@x.com"}`))
	_, ok, err = s.Current(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func Test_OnSessionWriteFailure_ShouldReportWriteError(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewInMemStorage(storage.WithQuota(10)))

	err := s.Establish(ctx, user.Profile{ID: "1", Name: "Alice", Email: "alice@x.com"})
	assert.True(t, customerr.IsWriteFailure(err))

	_, ok, _ := s.Current(ctx)
	assert.False(t, ok)
}
