package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserServices(t *testing.T) map[string]UserService {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}
	return map[string]UserService{
		"file":   NewUserService(repository.NewFileUserRepo(t.TempDir()), hasher),
		"sqlite": NewUserService(repository.NewSQLiteUserRepo(testutil.NewTestDB(t)), hasher),
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	for name, svc := range newUserServices(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := svc.Register(ctx, "alice", "s3cret")
			require.NoError(t, err)
			assert.Equal(t, "alice", id.Username)

			got, err := svc.Authenticate(ctx, "alice", "s3cret")
			require.NoError(t, err)
			assert.Equal(t, id, got)

			_, err = svc.Authenticate(ctx, "alice", "wrong")
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			_, err = svc.Authenticate(ctx, "bob", "s3cret")
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	for name, svc := range newUserServices(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := svc.Register(ctx, "alice", "one")
			require.NoError(t, err)

			_, err = svc.Register(ctx, "alice", "two")
			assert.ErrorIs(t, err, ErrUserExists)

			// The original password still works.
			_, err = svc.Authenticate(ctx, "alice", "one")
			assert.NoError(t, err)
		})
	}
}

func TestRegister_ValidatesInput(t *testing.T) {
	svc := NewUserService(repository.NewFileUserRepo(t.TempDir()), BcryptHasher{Cost: bcrypt.MinCost})
	ctx := context.Background()

	for _, name := range []string{"", "a b", "a,b", "../etc", "x/y", ".", ".."} {
		_, err := svc.Register(ctx, name, "pw")
		assert.ErrorIs(t, err, ErrInvalidUsername, "username %q", name)
	}

	_, err := svc.Register(ctx, "alice", "")
	assert.Error(t, err)

	for _, name := range []string{"alice", "Bob_2", "j.doe", "x-y"} {
		assert.NoError(t, ValidateUsername(name), name)
	}
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	dir := t.TempDir()
	users := repository.NewFileUserRepo(dir)
	svc := NewUserService(users, BcryptHasher{Cost: bcrypt.MinCost})
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "plaintext-pw")
	require.NoError(t, err)

	u, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotContains(t, u.PasswordHash, "plaintext-pw")
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"))
}

func TestResolve(t *testing.T) {
	svc := NewUserService(repository.NewFileUserRepo(t.TempDir()), BcryptHasher{Cost: bcrypt.MinCost})
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	id, err := svc.Resolve(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)

	_, err = svc.Resolve(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, repository.ErrMissingIdentity)
}
