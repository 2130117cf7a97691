package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "token-codec-test-secret"

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	token, expiresAt, err := codec.Issue("admin", []string{"USER", "ADMIN"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	principal, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Name)
	assert.ElementsMatch(t, []string{"ADMIN", "USER"}, principal.Roles)
}

func TestTokenCodec_RoleOrderIndependent(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	first, _, err := codec.Issue("admin", []string{"ADMIN", "USER"})
	require.NoError(t, err)
	second, _, err := codec.Issue("admin", []string{"USER", "ADMIN"})
	require.NoError(t, err)

	p1, err := codec.Verify(first)
	require.NoError(t, err)
	p2, err := codec.Verify(second)
	require.NoError(t, err)
	assert.Equal(t, p1.Roles, p2.Roles)
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	issuedAt := time.Now()
	codec.now = func() time.Time { return issuedAt }
	codec.ttl = time.Second

	token, _, err := codec.Issue("admin", []string{"ADMIN"})
	require.NoError(t, err)

	// Advance the clock past the TTL instead of sleeping.
	codec.now = func() time.Time { return issuedAt.Add(2 * time.Second) }

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_TamperDetection(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	token, _, err := codec.Issue("admin", []string{"ADMIN"})
	require.NoError(t, err)

	for i := 0; i < len(token); i += 7 {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		if string(tampered) == token {
			continue
		}

		_, err := codec.Verify(string(tampered))
		require.Error(t, err, "tampered token at offset %d must not verify", i)
		assert.True(t, errors.Is(err, ErrTokenBadSignature) || errors.Is(err, ErrTokenMalformed),
			"unexpected error %v at offset %d", err, i)
	}
}

func TestTokenCodec_BadSignature(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	other := NewTokenCodec("a-different-signing-key", 60)

	token, _, err := other.Issue("admin", []string{"ADMIN"})
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	for _, raw := range []string{"", "garbage", "a.b", strings.Repeat("x", 100)} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}
