package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec("test-secret", "webgw-test", time.Hour)

	value, err := codec.Issue("sess-42")
	require.NoError(t, err)
	require.NotEmpty(t, value)

	sid, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", sid)
}

func TestCookieCodec_RejectsTamperedValue(t *testing.T) {
	codec := NewCookieCodec("test-secret", "webgw-test", time.Hour)

	value, err := codec.Issue("sess-42")
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(value, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Decode(tampered)
	assert.Error(t, err)
}

func TestCookieCodec_RejectsForeignSecret(t *testing.T) {
	issuer := NewCookieCodec("secret-a", "webgw-test", time.Hour)
	verifier := NewCookieCodec("secret-b", "webgw-test", time.Hour)

	value, err := issuer.Issue("sess-42")
	require.NoError(t, err)

	_, err = verifier.Decode(value)
	assert.Error(t, err)
}

func TestCookieCodec_RejectsExpired(t *testing.T) {
	codec := NewCookieCodec("test-secret", "webgw-test", -time.Minute)

	value, err := codec.Issue("sess-42")
	require.NoError(t, err)

	_, err = codec.Decode(value)
	assert.Error(t, err)
}

func TestCookieCodec_RejectsGarbage(t *testing.T) {
	codec := NewCookieCodec("test-secret", "webgw-test", time.Hour)

	for _, value := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := codec.Decode(value); err == nil {
			t.Errorf("expected error decoding %q", value)
		}
	}
}
