package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	state  []byte
	pushes int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"tok-new"}`))
	})
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("GET /api/me", authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.c","name":"Asura"}`))
	}))
	mux.HandleFunc("GET /api/state", authed(func(w http.ResponseWriter, r *http.Request) {
		if f.state == nil {
			_, _ = w.Write([]byte("null"))
			return
		}
		_, _ = w.Write(f.state)
	}))
	mux.HandleFunc("PUT /api/state", authed(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		f.state = body
		f.pushes++
		w.WriteHeader(http.StatusNoContent)
	}))
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func TestClientLoginAndMe(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})
	ctx := context.Background()

	_, err := c.Login(ctx, "a@b.c", "wrong")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "invalid email or password", se.Message)

	token, err := c.Login(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	token, err = c.Register(ctx, "n@b.c", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)

	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	authed := c.WithToken("tok-1")
	assert.True(t, authed.HasSession())
	assert.False(t, c.HasSession())
	p, err := authed.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "Asura", p.Name)
}

func TestClientStateRoundTrip(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api).WithToken("tok-1")
	ctx := context.Background()

	raw, err := c.FetchState(ctx)
	require.NoError(t, err)
	assert.Nil(t, raw)

	require.NoError(t, c.PushState(ctx, []byte(`{"minimalMode":true}`)))
	assert.Equal(t, 1, api.pushes)

	raw, err = c.FetchState(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"minimalMode":true}`, string(raw))

	err = c.WithToken("expired").PushState(ctx, []byte(`{}`))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, 1, api.pushes)
}
