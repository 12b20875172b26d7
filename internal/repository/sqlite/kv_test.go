package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"asura/tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "nested", "tracker.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	kv := openKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "activity-storage")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, kv.Put(ctx, "activity-storage", []byte(`{"version":1}`)))
	require.NoError(t, kv.Put(ctx, "activity-storage", []byte(`{"version":12}`)))
	got, err := kv.Get(ctx, "activity-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":12}`, string(got))

	require.NoError(t, kv.Delete(ctx, "activity-storage"))
	_, err = kv.Get(ctx, "activity-storage")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, kv.Delete(ctx, "never-there"))
}

func TestKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	kv, err := Open(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, "auth_token", []byte("abc")))
	require.NoError(t, kv.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	got, err := again.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, path, again.Path())
}
