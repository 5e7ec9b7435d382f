package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	issuer := New("test-secret", time.Hour)

	token, err := issuer.Sign("64f000000000000000000001")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
}

func TestParseRejectsForgedToken(t *testing.T) {
	issuer := New("test-secret", time.Hour)
	other := New("other-secret", time.Hour)

	token, err := other.Sign("64f000000000000000000001")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := New("test-secret", time.Nanosecond)

	token, err := issuer.Sign("64f000000000000000000001")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := New("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Parse(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestNewZeroTTLFallsBack(t *testing.T) {
	issuer := New("test-secret", 0)
	assert.Equal(t, DefaultTTL, issuer.ttl)
}
