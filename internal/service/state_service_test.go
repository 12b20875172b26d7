package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"asura/tracker/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeSnapshots) PutObject(_ context.Context, key, _ string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = body
	return nil
}

func (f *fakeSnapshots) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://snapshots.example/" + key + "?sig=1", nil
}

func TestStateGetPut(t *testing.T) {
	svc := NewStateService(memory.NewStateRepository(), nil)
	ctx := context.Background()

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.Put(ctx, "u1", []byte(` {"minimalMode": true} `)))
	got, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"minimalMode": true}`, string(got))

	for _, bad := range []string{"", "null", "[1]", `{"a":`, `"str"`} {
		assert.ErrorIs(t, svc.Put(ctx, "u1", []byte(bad)), ErrInvalidState, bad)
	}
}

func TestStateExport(t *testing.T) {
	states := memory.NewStateRepository()
	snaps := &fakeSnapshots{objects: map[string][]byte{}}
	svc := NewStateService(states, snaps).(*stateService)
	svc.now = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err := svc.Export(ctx, "u1")
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, svc.Put(ctx, "u1", []byte(`{"violin":{"totalHours":780}}`)))
	res, err := svc.Export(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ObjectKey, "exports/u1/20240310T090000Z-"), res.ObjectKey)
	assert.Equal(t, `{"violin":{"totalHours":780}}`, string(snaps.objects[res.ObjectKey]))
	assert.Contains(t, res.URL, res.ObjectKey)
	assert.Equal(t, svc.now().Add(15*time.Minute), res.ExpiresAt)

	snaps.putErr = errors.New("bucket gone")
	_, err = svc.Export(ctx, "u1")
	assert.Error(t, err)
}

func TestStateExportUnavailable(t *testing.T) {
	svc := NewStateService(memory.NewStateRepository(), nil)
	_, err := svc.Export(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
