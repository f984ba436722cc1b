package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *db.MemoryStore) {
	t.Helper()
	kv := db.NewMemoryStore()
	return NewStore(kv), kv
}

func TestRegister_SignsIn(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	session, err := store.Register(ctx, types.User{Name: "Asha", Email: "asha@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", session.Name)
	assert.Equal(t, "asha@example.com", session.Email)
	assert.NotEqual(t, "", session.ID.String())

	current, err := store.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session.ID, current.ID)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Register(ctx, types.User{Name: "A", Email: "a@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = store.Register(ctx, types.User{Name: "B", Email: "a@example.com", Password: "y"})
	require.Error(t, err)
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)
	assert.Equal(t, "a@example.com", exists.Email)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, err := store.Register(ctx, types.User{Name: "A", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, store.EndSession(ctx))

	tests := []struct {
		name    string
		email   string
		secret  string
		wantErr bool
	}{
		{name: "correct secret", email: "a@example.com", secret: "secret"},
		{name: "wrong secret", email: "a@example.com", secret: "nope", wantErr: true},
		{name: "unknown email", email: "b@example.com", secret: "secret", wantErr: true},
		{name: "empty secret", email: "a@example.com", secret: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := store.Authenticate(ctx, tt.email, tt.secret)
			if tt.wantErr {
				var invalid *ErrInvalidCredentials
				assert.ErrorAs(t, err, &invalid)
				assert.Equal(t, "invalid credentials", err.Error())
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", session.Name)
		})
	}
}

func TestSession_OmitsSecret(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	_, err := store.Register(ctx, types.User{Name: "A", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	raw, err := kv.Get(ctx, db.KeyCurrentUser)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, string(raw), "secret")
}

func TestSecretsStoredVerbatim(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	_, err := store.Register(ctx, types.User{Name: "A", Email: "a@example.com", Password: "plain-text"})
	require.NoError(t, err)

	var users []types.User
	found, err := db.GetJSON(ctx, kv, db.KeyUsers, &users)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, users, 1)
	assert.Equal(t, "plain-text", users[0].Password)
}

func TestEndSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	current, err := store.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = store.Register(ctx, types.User{Name: "A", Email: "a@example.com", Password: "x"})
	require.NoError(t, err)
	require.NoError(t, store.EndSession(ctx))

	current, err = store.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestRegister_Concurrent(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Register(ctx, types.User{
				Name:     fmt.Sprintf("User %d", i),
				Email:    fmt.Sprintf("user%d@example.com", i),
				Password: "secret",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var users []types.User
	found, err := db.GetJSON(ctx, kv, db.KeyUsers, &users)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, users, n)

	seen := make(map[string]bool, n)
	for _, u := range users {
		seen[u.Email] = true
	}
	assert.Len(t, seen, n)
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	var ok, dup atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Register(ctx, types.User{Name: "Same", Email: "same@example.com", Password: "x"})
			var exists *ErrEmailAlreadyExists
			switch {
			case err == nil:
				ok.Add(1)
			case errors.As(err, &exists):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), dup.Load())

	var users []types.User
	_, err := db.GetJSON(ctx, kv, db.KeyUsers, &users)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
