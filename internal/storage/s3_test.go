package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"asura/tracker/internal/config"
	"asura/tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.objects[r.URL.Path] = body
	f.types[r.URL.Path] = r.Header.Get("Content-Type")
	f.mu.Unlock()
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func newTestStorage(t *testing.T) (SnapshotStorage, *fakeS3, string) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	st, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		BucketName:      "snapshots",
		PathStyle:       true,
	}, logger.Discard())
	require.NoError(t, err)
	return st, fake, srv.URL
}

func TestPutObject(t *testing.T) {
	st, fake, _ := newTestStorage(t)

	require.NoError(t, st.PutObject(context.Background(), "exports/u1/a.json", "application/json", []byte(`{"minimalMode":true}`)))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Contains(t, fake.objects, "/snapshots/exports/u1/a.json")
	assert.Contains(t, string(fake.objects["/snapshots/exports/u1/a.json"]), `{"minimalMode":true}`)
	assert.Equal(t, "application/json", fake.types["/snapshots/exports/u1/a.json"])
}

func TestPresignedDownloadURL(t *testing.T) {
	st, _, base := newTestStorage(t)

	url, err := st.GeneratePresignedDownloadURL(context.Background(), "exports/u1/a.json", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, base+"/snapshots/exports/u1/a.json?"), url)
	assert.Contains(t, url, "X-Amz-Expires=60")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"}, logger.Discard())
	assert.Error(t, err)
}
