package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/taskboard/pkg/auth"
)

const testIssuer = "taskboard-test"

func newUser() auth.User {
	return auth.User{ID: uuid.New(), Email: "a@x.com", Role: auth.RoleUser}
}

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()
	g := NewGenerator("super-secret", testIssuer, time.Hour)
	user := newUser()

	token, err := g.Generate(context.Background(), user)
	require.NoError(t, err)

	gotID, err := g.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	g := NewGenerator("secret", testIssuer, -time.Second)
	token, err := g.Generate(context.Background(), newUser())
	require.NoError(t, err)

	_, err = g.Verify(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerify_NotYetExpired(t *testing.T) {
	t.Parallel()
	// Expiry just ahead of the clock must still verify.
	g := NewGenerator("secret", testIssuer, 2*time.Second)
	user := newUser()
	token, err := g.Generate(context.Background(), user)
	require.NoError(t, err)

	gotID, err := g.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()
	g := NewGenerator("secret", testIssuer, time.Hour)
	token, err := g.Generate(context.Background(), newUser())
	require.NoError(t, err)

	// Flip one character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = g.Verify(context.Background(), tampered)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	issuing := NewGenerator("right-secret", testIssuer, time.Hour)
	token, err := issuing.Generate(context.Background(), newUser())
	require.NoError(t, err)

	verifying := NewGenerator("wrong-secret", testIssuer, time.Hour)
	_, err = verifying.Verify(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	g := NewGenerator("secret", testIssuer, time.Hour)
	for _, tokenStr := range []string{"", "not.a.jwt", "garbage"} {
		_, err := g.Verify(context.Background(), tokenStr)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid, "token %q", tokenStr)
	}
}

func TestVerify_IssuerMismatch(t *testing.T) {
	t.Parallel()
	issuing := NewGenerator("secret", "other-service", time.Hour)
	token, err := issuing.Generate(context.Background(), newUser())
	require.NoError(t, err)

	verifying := NewGenerator("secret", testIssuer, time.Hour)
	_, err = verifying.Verify(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}
