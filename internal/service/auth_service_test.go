package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"asura/tracker/internal/repository/memory"
	"asura/tracker/internal/seed"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*authService, *memory.StateRepository) {
	t.Helper()
	states := memory.NewStateRepository()
	svc := NewAuthService(memory.NewUserRepository(), states, seed.Selector{
		Default:   seed.Minimal,
		Overrides: map[string]string{"owner@example.com": seed.Demo},
	}, testSecret, 0).(*authService)
	svc.now = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
	return svc, states
}

func parseToken(t *testing.T, token string) *jwtClaims {
	t.Helper()
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	return claims
}

func TestRegisterSeedsState(t *testing.T) {
	svc, states := newAuth(t)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "Asura", "someone@example.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	claims := parseToken(t, token)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "someone@example.com", claims.Email)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	raw, err := states.Get(ctx, user.ID)
	require.NoError(t, err)
	var doc struct {
		HiddenActivities map[string]bool `json:"hiddenActivities"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.True(t, doc.HiddenActivities["boxing"])

	_, _, err = svc.Register(ctx, "", "someone@example.com", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterUsesProfileOverride(t *testing.T) {
	svc, states := newAuth(t)
	ctx := context.Background()

	_, user, err := svc.Register(ctx, "", "Owner@Example.com", "pw")
	require.NoError(t, err)

	raw, err := states.Get(ctx, user.ID)
	require.NoError(t, err)
	var doc struct {
		Violin struct {
			TotalHours float64 `json:"totalHours"`
		} `json:"violin"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 780.0, doc.Violin.TotalHours)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newAuth(t)
	_, _, err := svc.Register(context.Background(), "x", " ", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Register(context.Background(), "x", "a@b.c", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	_, registered, err := svc.Register(ctx, "Asura", "a@b.c", "secret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = svc.Login(ctx, "nobody@b.c", "secret")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	token, user, err := svc.Login(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, parseToken(t, token).Subject)
	assert.Empty(t, user.PasswordHash)

	me, err := svc.Me(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asura", me.Name)
	assert.Empty(t, me.PasswordHash)
}
