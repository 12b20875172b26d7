package memory

import (
	"context"
	"testing"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.StateRepository    = (*StateRepository)(nil)
	_ repository.KeyValueRepository = (*KeyValueRepository)(nil)
)

func TestUsersAreUniqueByEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository()

	id, err := users.Create(ctx, &domain.User{Email: "Me@Example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{Email: "me@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	u, err := users.GetByEmail(ctx, "ME@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStateSeedDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	states := NewStateRepository()

	require.NoError(t, states.Seed(ctx, "u1", []byte(`{"a":1}`)))
	require.NoError(t, states.Seed(ctx, "u1", []byte(`{"a":2}`)))
	got, err := states.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, states.Put(ctx, "u1", []byte(`{"a":3}`)))
	got, _ = states.Get(ctx, "u1")
	assert.Equal(t, `{"a":3}`, string(got))
}
