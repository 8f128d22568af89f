package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, clock clockwork.Clock) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, 6*time.Hour, clock)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodecRejectsShortSecret(t *testing.T) {
	_, err := NewTokenCodec("short", 6*time.Hour, clockwork.NewFakeClock())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestNewTokenCodecRejectsZeroTTL(t *testing.T) {
	_, err := NewTokenCodec(testSecret, 0, clockwork.NewFakeClock())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl must be positive")
}

func TestTokenRoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := newTestCodec(t, clock)

	token, err := codec.Issue("ana@x.com", "admin")
	require.NoError(t, err)

	claims, err := codec.DecodeAndVerify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, clock.Now().Add(6*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := newTestCodec(t, clock)

	token, err := codec.Issue("ana@x.com", "user")
	require.NoError(t, err)

	clock.Advance(6*time.Hour + time.Second)

	_, err = codec.DecodeAndVerify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenValidJustBeforeExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := newTestCodec(t, clock)

	token, err := codec.Issue("ana@x.com", "user")
	require.NoError(t, err)

	clock.Advance(6*time.Hour - time.Second)

	_, err = codec.DecodeAndVerify(token)
	assert.NoError(t, err)
}

func TestTokenTamperedSignature(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := newTestCodec(t, clock)

	token, err := codec.Issue("ana@x.com", "user")
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	tampered := token[:len(token)-1]
	if strings.HasSuffix(token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = codec.DecodeAndVerify(tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenSignedWithDifferentSecret(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := newTestCodec(t, clock)

	other, err := NewTokenCodec(strings.Repeat("x", 32), 6*time.Hour, clock)
	require.NoError(t, err)

	token, err := other.Issue("ana@x.com", "user")
	require.NoError(t, err)

	_, err = codec.DecodeAndVerify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenGarbageInput(t *testing.T) {
	codec := newTestCodec(t, clockwork.NewFakeClock())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.DecodeAndVerify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}
